package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"millionaire-game-service/internal/domain"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, etc).
// Create enforces the one-active-game-per-user policy.
type SessionRepository interface {
	Create(ctx context.Context, game *Game) error
	Get(ctx context.Context, sessionID string) (*Game, error)
	Save(ctx context.Context, game *Game) error
}

// BankRepository loads question-bank content (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context) (domain.QuestionBank, error)
}

// BalanceRepository credits prize money to a user when a session ends.
type BalanceRepository interface {
	Credit(ctx context.Context, userID string, amount int64) error
}

// GameService contains the game use cases. Mutating calls are serialized per
// session so concurrent requests cannot race the state machine.
type GameService struct {
	sessions SessionRepository
	bank     BankRepository
	balances BalanceRepository
	rules    Rules
	now      func() time.Time

	mu    sync.Mutex
	rnd   *rand.Rand
	locks map[string]*sync.Mutex
}

func NewGameService(sessions SessionRepository, bank BankRepository, balances BalanceRepository, rules Rules) *GameService {
	return NewGameServiceWithClock(sessions, bank, balances, rules,
		rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewGameServiceWithClock is test-only for deterministic sampling and timestamps.
func NewGameServiceWithClock(sessions SessionRepository, bank BankRepository, balances BalanceRepository, rules Rules, rnd *rand.Rand, now func() time.Time) *GameService {
	return &GameService{
		sessions: sessions,
		bank:     bank,
		balances: balances,
		rules:    rules.withDefaults(),
		now:      now,
		rnd:      rnd,
		locks:    make(map[string]*sync.Mutex),
	}
}

// StartGame creates a session with one freshly sampled question per level.
// The session store rejects a second active game for the same user.
func (s *GameService) StartGame(ctx context.Context, userID string) (domain.GameView, error) {
	bank, err := s.bank.GetBank(ctx)
	if err != nil {
		return domain.GameView{}, err
	}

	s.mu.Lock()
	seed := s.rnd.Int63()
	s.mu.Unlock()

	game, err := newGame(uuid.NewString(), userID, bank, s.rules, rand.New(rand.NewSource(seed)), s.now)
	if err != nil {
		return domain.GameView{}, err
	}
	if err := s.sessions.Create(ctx, game); err != nil {
		return domain.GameView{}, err
	}
	return game.View(), nil
}

// Answer submits an answer key for the session's question in play.
func (s *GameService) Answer(ctx context.Context, sessionID, key string) (domain.GameView, error) {
	return s.withSession(ctx, sessionID, func(game *Game) error {
		return game.AnswerCurrent(key)
	})
}

// UseHint applies one of the three limited-use hints to the question in play.
func (s *GameService) UseHint(ctx context.Context, sessionID string, kind domain.HintKind) (domain.GameView, error) {
	return s.withSession(ctx, sessionID, func(game *Game) error {
		return game.UseHint(kind)
	})
}

// CashOut ends the session, banking the prize of the last cleared level.
func (s *GameService) CashOut(ctx context.Context, sessionID string) (domain.GameView, error) {
	return s.withSession(ctx, sessionID, func(game *Game) error {
		return game.CashOut()
	})
}

// State reports the current view without playing a move. Expiry still applies:
// an over-budget session turns into a timeout on this observation.
func (s *GameService) State(ctx context.Context, sessionID string) (domain.GameView, error) {
	return s.withSession(ctx, sessionID, func(*Game) error {
		return nil
	})
}

// withSession loads the session under its lock, applies the lazy timeout
// check, runs op, and persists any state change. Rejected operations leave no
// partial mutation behind.
func (s *GameService) withSession(ctx context.Context, sessionID string, op func(*Game) error) (domain.GameView, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	game, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.GameView{}, err
	}

	wasFinished := game.Finished()
	if game.ExpireIfTimedOut() {
		if err := s.persist(ctx, game, wasFinished); err != nil {
			return domain.GameView{}, err
		}
		return game.View(), domain.ErrTimeExpired
	}

	opErr := op(game)
	if opErr != nil && !errors.Is(opErr, domain.ErrTimeExpired) {
		// rejected without mutation
		return game.View(), opErr
	}
	if err := s.persist(ctx, game, wasFinished); err != nil {
		return domain.GameView{}, err
	}
	return game.View(), opErr
}

// persist saves the session and, exactly once, credits the prize when the
// session just turned terminal. The store and the balance update should commit
// together; the bundled stores apply them in order, best effort.
func (s *GameService) persist(ctx context.Context, game *Game, wasFinished bool) error {
	if err := s.sessions.Save(ctx, game); err != nil {
		return err
	}
	if !wasFinished && game.Finished() && game.Prize() > 0 {
		return s.balances.Credit(ctx, game.UserID(), game.Prize())
	}
	return nil
}

func (s *GameService) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}
