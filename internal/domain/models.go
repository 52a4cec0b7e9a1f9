package domain

import "time"

// AnswerKeys are the four slot keys a bound question's answers are shuffled into.
var AnswerKeys = []string{"a", "b", "c", "d"}

// Question is an immutable question-bank record. By repository convention the
// answer stored at Answers[0] is the correct one; per-session shuffling hides
// that from players.
type Question struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Level   int       `json:"level"`
	Answers [4]string `json:"answers"`
}

// Validate rejects data-entry errors: a question must carry text and a level
// inside the ladder.
func (q Question) Validate(ladderLen int) error {
	if q.Text == "" {
		return ErrQuestionText
	}
	if q.Level < 0 || q.Level >= ladderLen {
		return ErrQuestionLevel
	}
	return nil
}

// QuestionBank is the full read-only question set supplied by the backing store.
type QuestionBank struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// HintKind identifies one of the three limited-use hints.
type HintKind string

const (
	HintFiftyFifty   HintKind = "fifty_fifty"
	HintAudienceHelp HintKind = "audience_help"
	HintFriendCall   HintKind = "friend_call"
)

// ParseHintKind maps a wire string to a known hint kind.
func ParseHintKind(raw string) (HintKind, error) {
	switch HintKind(raw) {
	case HintFiftyFifty, HintAudienceHelp, HintFriendCall:
		return HintKind(raw), nil
	}
	return "", ErrUnknownHint
}

// HintPayloads holds the computed hint effects for one bound question.
// A field is populated only after its hint has been used; zero values mean unused.
type HintPayloads struct {
	FiftyFifty   []string       `json:"fiftyFifty,omitempty"`
	AudienceHelp map[string]int `json:"audienceHelp,omitempty"`
	FriendCall   string         `json:"friendCall,omitempty"`
}

// Has reports whether the payload for the given kind has been stored.
func (h HintPayloads) Has(kind HintKind) bool {
	switch kind {
	case HintFiftyFifty:
		return len(h.FiftyFifty) > 0
	case HintAudienceHelp:
		return len(h.AudienceHelp) > 0
	case HintFriendCall:
		return h.FriendCall != ""
	}
	return false
}

// Status is the derived lifecycle state of a game session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusMoney      Status = "money"
)

// Outcome is the explicit terminal tag written at the moment a session ends.
// Recording it once keeps a session's displayed status from drifting to
// timeout just because wall-clock time kept passing after termination.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWon       Outcome = "won"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed_out"
	OutcomeCashedOut Outcome = "cashed_out"
)

// QuestionRecord is the persisted form of one question binding: the shuffled
// variants, which key is correct, and any hint payloads already revealed.
type QuestionRecord struct {
	Question   Question          `json:"question"`
	Variants   map[string]string `json:"variants"`
	CorrectKey string            `json:"correctKey"`
	Help       HintPayloads      `json:"help"`
}

// GameRecord is the persisted session aggregate. It retains everything needed
// to reconstruct status and resume play on another instance.
type GameRecord struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Questions        []QuestionRecord `json:"questions"`
	CurrentLevel     int              `json:"currentLevel"`
	Prize            int64            `json:"prize"`
	UsedFiftyFifty   bool             `json:"usedFiftyFifty"`
	UsedAudienceHelp bool             `json:"usedAudienceHelp"`
	UsedFriendCall   bool             `json:"usedFriendCall"`
	Outcome          Outcome          `json:"outcome"`
	CreatedAt        time.Time        `json:"createdAt"`
	FinishedAt       *time.Time       `json:"finishedAt,omitempty"`
}

// QuestionView is the player-facing projection of the current question.
// It never exposes the correct key.
type QuestionView struct {
	Level    int               `json:"level"`
	Text     string            `json:"text"`
	Variants map[string]string `json:"variants"`
	Help     HintPayloads      `json:"help"`
}

// GameView is the read projection returned by every game use case.
type GameView struct {
	SessionID        string        `json:"sessionId"`
	UserID           string        `json:"userId"`
	Status           Status        `json:"status"`
	CurrentLevel     int           `json:"currentLevel"`
	Prize            int64         `json:"prize"`
	Question         *QuestionView `json:"question,omitempty"`
	UsedFiftyFifty   bool          `json:"usedFiftyFifty"`
	UsedAudienceHelp bool          `json:"usedAudienceHelp"`
	UsedFriendCall   bool          `json:"usedFriendCall"`
	Finished         bool          `json:"finished"`
	Failed           bool          `json:"failed"`
	CreatedAt        time.Time     `json:"createdAt"`
	FinishedAt       *time.Time    `json:"finishedAt,omitempty"`
}
