package app

import (
	"math/rand"

	"millionaire-game-service/internal/domain"
)

// GameQuestion binds a bank question into one session: the four answers are
// shuffled once into the a..d keys and the permutation is stored, never
// recomputed. Help payloads accumulate as hints are used.
type GameQuestion struct {
	Question   domain.Question
	Variants   map[string]string
	CorrectKey string
	Help       domain.HintPayloads
}

// bindQuestion draws a fresh permutation of the answer slots. The correct key
// is wherever Answers[0] landed.
func bindQuestion(q domain.Question, rnd *rand.Rand) *GameQuestion {
	perm := rnd.Perm(len(domain.AnswerKeys))
	variants := make(map[string]string, len(perm))
	correct := ""
	for i, key := range domain.AnswerKeys {
		variants[key] = q.Answers[perm[i]]
		if perm[i] == 0 {
			correct = key
		}
	}
	return &GameQuestion{
		Question:   q,
		Variants:   variants,
		CorrectKey: correct,
	}
}

// Level delegates to the underlying question.
func (q *GameQuestion) Level() int {
	return q.Question.Level
}

// Text delegates to the underlying question.
func (q *GameQuestion) Text() string {
	return q.Question.Text
}

// IsCorrect reports whether the given key holds the correct answer.
func (q *GameQuestion) IsCorrect(key string) bool {
	return key == q.CorrectKey
}

// View is the player-facing projection; it never includes the correct key.
func (q *GameQuestion) View() domain.QuestionView {
	variants := make(map[string]string, len(q.Variants))
	for key, text := range q.Variants {
		variants[key] = text
	}
	return domain.QuestionView{
		Level:    q.Question.Level,
		Text:     q.Question.Text,
		Variants: variants,
		Help:     q.Help,
	}
}

func (q *GameQuestion) record() domain.QuestionRecord {
	return domain.QuestionRecord{
		Question:   q.Question,
		Variants:   q.Variants,
		CorrectKey: q.CorrectKey,
		Help:       q.Help,
	}
}

func questionFromRecord(rec domain.QuestionRecord) *GameQuestion {
	return &GameQuestion{
		Question:   rec.Question,
		Variants:   rec.Variants,
		CorrectKey: rec.CorrectKey,
		Help:       rec.Help,
	}
}
