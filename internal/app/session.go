package app

import (
	"math/rand"
	"slices"
	"time"

	"github.com/samber/lo"
	"millionaire-game-service/internal/domain"
)

// Rules bundles the static game configuration shared by every session.
type Rules struct {
	Prizes    *PrizeTable
	TimeLimit time.Duration
}

// DefaultTimeLimit is the play budget for one session.
const DefaultTimeLimit = time.Hour

func (r Rules) withDefaults() Rules {
	if r.Prizes == nil {
		r.Prizes = DefaultPrizeTable()
	}
	if r.TimeLimit <= 0 {
		r.TimeLimit = DefaultTimeLimit
	}
	return r
}

// Game is the session state machine: one play-through from creation to a
// terminal outcome. It is not safe for concurrent use; the service serializes
// calls per session.
type Game struct {
	id     string
	userID string

	questions    []*GameQuestion
	currentLevel int
	prize        int64

	usedFiftyFifty   bool
	usedAudienceHelp bool
	usedFriendCall   bool

	outcome    domain.Outcome
	createdAt  time.Time
	finishedAt *time.Time

	rules Rules
	now   func() time.Time
	rnd   *rand.Rand
}

// newGame samples one question per level, each with a fresh answer
// permutation. Questions at different levels are distinct by construction.
func newGame(id, userID string, bank domain.QuestionBank, rules Rules, rnd *rand.Rand, now func() time.Time) (*Game, error) {
	rules = rules.withDefaults()
	levels := rules.Prizes.Levels()

	questions := make([]*GameQuestion, levels)
	for level := 0; level < levels; level++ {
		candidates := lo.Filter(bank.Questions, func(q domain.Question, _ int) bool {
			return q.Level == level
		})
		if len(candidates) == 0 {
			return nil, domain.ErrInsufficientQuestions
		}
		picked := candidates[rnd.Intn(len(candidates))]
		if err := picked.Validate(levels); err != nil {
			return nil, err
		}
		questions[level] = bindQuestion(picked, rnd)
	}

	return &Game{
		id:        id,
		userID:    userID,
		questions: questions,
		createdAt: now(),
		rules:     rules,
		now:       now,
		rnd:       rnd,
	}, nil
}

// RestoreGame rehydrates a persisted session so play can resume on any
// instance. Status is fully determined by the record.
func RestoreGame(rec domain.GameRecord, rules Rules) *Game {
	questions := make([]*GameQuestion, len(rec.Questions))
	for i, qr := range rec.Questions {
		questions[i] = questionFromRecord(qr)
	}
	return &Game{
		id:               rec.ID,
		userID:           rec.UserID,
		questions:        questions,
		currentLevel:     rec.CurrentLevel,
		prize:            rec.Prize,
		usedFiftyFifty:   rec.UsedFiftyFifty,
		usedAudienceHelp: rec.UsedAudienceHelp,
		usedFriendCall:   rec.UsedFriendCall,
		outcome:          rec.Outcome,
		createdAt:        rec.CreatedAt,
		finishedAt:       rec.FinishedAt,
		rules:            rules.withDefaults(),
		now:              time.Now,
		rnd:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ID returns the session id.
func (g *Game) ID() string { return g.id }

// UserID returns the owning user.
func (g *Game) UserID() string { return g.userID }

// CurrentLevel returns the level of the question in play.
func (g *Game) CurrentLevel() int { return g.currentLevel }

// Prize returns the realized prize amount.
func (g *Game) Prize() int64 { return g.prize }

// Outcome returns the terminal tag, empty while in progress.
func (g *Game) Outcome() domain.Outcome { return g.outcome }

// Finished reports whether the session reached a terminal state.
func (g *Game) Finished() bool { return g.finishedAt != nil }

// Status derives the lifecycle state from the stored outcome tag alone.
func (g *Game) Status() domain.Status {
	switch g.outcome {
	case domain.OutcomeWon:
		return domain.StatusWon
	case domain.OutcomeFailed:
		return domain.StatusFail
	case domain.OutcomeTimedOut:
		return domain.StatusTimeout
	case domain.OutcomeCashedOut:
		return domain.StatusMoney
	}
	return domain.StatusInProgress
}

// CurrentQuestion returns the question in play, nil once the ladder is cleared.
func (g *Game) CurrentQuestion() *GameQuestion {
	if g.currentLevel < 0 || g.currentLevel >= len(g.questions) {
		return nil
	}
	return g.questions[g.currentLevel]
}

func (g *Game) expired() bool {
	return g.now().Sub(g.createdAt) > g.rules.TimeLimit
}

// finish stamps the terminal outcome. The prize only ever grows.
func (g *Game) finish(outcome domain.Outcome, prize int64) {
	now := g.now()
	g.finishedAt = &now
	g.outcome = outcome
	if prize > g.prize {
		g.prize = prize
	}
}

// AnswerCurrent evaluates an answer key against the question in play.
// An expired session terminates as a timeout and the answer is not evaluated.
func (g *Game) AnswerCurrent(key string) error {
	if g.Finished() {
		return domain.ErrAlreadyFinished
	}
	if g.expired() {
		g.finish(domain.OutcomeTimedOut, g.rules.Prizes.FireproofFloor(g.currentLevel))
		return domain.ErrTimeExpired
	}
	if !slices.Contains(domain.AnswerKeys, key) {
		return domain.ErrInvalidAnswerKey
	}

	question := g.questions[g.currentLevel]
	if !question.IsCorrect(key) {
		g.finish(domain.OutcomeFailed, g.rules.Prizes.FireproofFloor(g.currentLevel))
		return nil
	}

	g.currentLevel++
	if g.currentLevel >= g.rules.Prizes.Levels() {
		g.finish(domain.OutcomeWon, g.rules.Prizes.Top())
	}
	return nil
}

// CashOut ends the session with the prize of the last fully cleared level.
func (g *Game) CashOut() error {
	if g.Finished() {
		return domain.ErrAlreadyFinished
	}
	g.finish(domain.OutcomeCashedOut, g.rules.Prizes.Amount(g.currentLevel-1))
	return nil
}

// ExpireIfTimedOut lazily applies the time budget. Idempotent; reports whether
// it terminated the session.
func (g *Game) ExpireIfTimedOut() bool {
	if g.Finished() || !g.expired() {
		return false
	}
	g.finish(domain.OutcomeTimedOut, g.rules.Prizes.FireproofFloor(g.currentLevel))
	return true
}

// UseHint computes and stores the payload for a hint kind, exactly once per
// session. A rejected call leaves the stored payload untouched.
func (g *Game) UseHint(kind domain.HintKind) error {
	if g.Finished() {
		return domain.ErrAlreadyFinished
	}
	question := g.CurrentQuestion()
	if question == nil {
		return domain.ErrAlreadyFinished
	}

	switch kind {
	case domain.HintFiftyFifty:
		if g.usedFiftyFifty {
			return domain.ErrHintAlreadyUsed
		}
		question.Help.FiftyFifty = fiftyFifty(question, g.rnd)
		g.usedFiftyFifty = true
	case domain.HintAudienceHelp:
		if g.usedAudienceHelp {
			return domain.ErrHintAlreadyUsed
		}
		question.Help.AudienceHelp = audienceVotes(question, g.rnd)
		g.usedAudienceHelp = true
	case domain.HintFriendCall:
		if g.usedFriendCall {
			return domain.ErrHintAlreadyUsed
		}
		question.Help.FriendCall = friendAdvice(question, g.rnd)
		g.usedFriendCall = true
	default:
		return domain.ErrUnknownHint
	}
	return nil
}

func (g *Game) failed() bool {
	return g.outcome == domain.OutcomeFailed || g.outcome == domain.OutcomeTimedOut
}

// Record snapshots the aggregate for persistence.
func (g *Game) Record() domain.GameRecord {
	questions := make([]domain.QuestionRecord, len(g.questions))
	for i, q := range g.questions {
		questions[i] = q.record()
	}
	return domain.GameRecord{
		ID:               g.id,
		UserID:           g.userID,
		Questions:        questions,
		CurrentLevel:     g.currentLevel,
		Prize:            g.prize,
		UsedFiftyFifty:   g.usedFiftyFifty,
		UsedAudienceHelp: g.usedAudienceHelp,
		UsedFriendCall:   g.usedFriendCall,
		Outcome:          g.outcome,
		CreatedAt:        g.createdAt,
		FinishedAt:       g.finishedAt,
	}
}

// View builds the read projection returned by every use case.
func (g *Game) View() domain.GameView {
	view := domain.GameView{
		SessionID:        g.id,
		UserID:           g.userID,
		Status:           g.Status(),
		CurrentLevel:     g.currentLevel,
		Prize:            g.prize,
		UsedFiftyFifty:   g.usedFiftyFifty,
		UsedAudienceHelp: g.usedAudienceHelp,
		UsedFriendCall:   g.usedFriendCall,
		Finished:         g.Finished(),
		Failed:           g.failed(),
		CreatedAt:        g.createdAt,
		FinishedAt:       g.finishedAt,
	}
	if question := g.CurrentQuestion(); question != nil && !g.Finished() {
		qv := question.View()
		view.Question = &qv
	}
	return view
}
