package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
	"millionaire-game-service/internal/infra/memory"
)

type serviceFixture struct {
	service  *app.GameService
	store    *memory.SessionStore
	balances *memory.BalanceStore
	shift    func(time.Duration)
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	current := time.Unix(1700000000, 0)
	now := func() time.Time { return current }

	store := memory.NewSessionStore()
	balances := memory.NewBalanceStore()
	bankRepo := memory.NewBankRepository(memory.NewStaticBankLoader(serviceBank()), 5*time.Minute)
	service := app.NewGameServiceWithClock(store, bankRepo, balances, app.Rules{},
		rand.New(rand.NewSource(42)), now)

	return &serviceFixture{
		service:  service,
		store:    store,
		balances: balances,
		shift:    func(d time.Duration) { current = current.Add(d) },
	}
}

func serviceBank() domain.QuestionBank {
	bank := domain.QuestionBank{ID: "svc"}
	for level := 0; level < 15; level++ {
		bank.Questions = append(bank.Questions, domain.Question{
			ID:    fmt.Sprintf("q%d", level),
			Text:  fmt.Sprintf("level %d question", level),
			Level: level,
			Answers: [4]string{
				fmt.Sprintf("right-%d", level),
				fmt.Sprintf("wrong-%d-1", level),
				fmt.Sprintf("wrong-%d-2", level),
				fmt.Sprintf("wrong-%d-3", level),
			},
		})
	}
	return bank
}

// correctKey peeks into the stored session; tests may, players may not.
func (f *serviceFixture) correctKey(t *testing.T, sessionID string) string {
	t.Helper()
	game, err := f.store.Get(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return game.CurrentQuestion().CorrectKey
}

func TestStartGameOnePerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Status != domain.StatusInProgress || view.Question == nil {
		t.Fatalf("unexpected start view: %+v", view)
	}
	if len(view.Question.Variants) != 4 {
		t.Fatalf("expected 4 variants, got %d", len(view.Question.Variants))
	}

	if _, err := f.service.StartGame(ctx, "u1"); !errors.Is(err, domain.ErrGameAlreadyInProgress) {
		t.Fatalf("expected ErrGameAlreadyInProgress, got %v", err)
	}

	// a finished game frees the slot
	if _, err := f.service.CashOut(ctx, view.SessionID); err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if _, err := f.service.StartGame(ctx, "u1"); err != nil {
		t.Fatalf("restart after finish: %v", err)
	}
}

func TestAnswerAndCashOutCreditsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for level := 0; level < 2; level++ {
		view, err = f.service.Answer(ctx, view.SessionID, f.correctKey(t, view.SessionID))
		if err != nil {
			t.Fatalf("answer level %d: %v", level, err)
		}
	}
	if view.CurrentLevel != 2 || view.Prize != 0 {
		t.Fatalf("expected level 2 with no prize yet, got %+v", view)
	}

	view, err = f.service.CashOut(ctx, view.SessionID)
	if err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if view.Status != domain.StatusMoney {
		t.Fatalf("expected money, got %s", view.Status)
	}
	if view.Prize != app.DefaultPrizeAmounts[1] {
		t.Fatalf("expected prize %d, got %d", app.DefaultPrizeAmounts[1], view.Prize)
	}
	if got := f.balances.Balance("u1"); got != view.Prize {
		t.Fatalf("expected balance %d, got %d", view.Prize, got)
	}

	// terminal sessions reject further moves and credit nothing more
	if _, err := f.service.Answer(ctx, view.SessionID, "a"); !errors.Is(err, domain.ErrAlreadyFinished) {
		t.Fatalf("expected ErrAlreadyFinished, got %v", err)
	}
	if got := f.balances.Balance("u1"); got != view.Prize {
		t.Fatalf("balance credited twice: %d", got)
	}
}

func TestWrongAnswerCreditsFireproofFloorOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for level := 0; level < 5; level++ {
		view, err = f.service.Answer(ctx, view.SessionID, f.correctKey(t, view.SessionID))
		if err != nil {
			t.Fatalf("answer level %d: %v", level, err)
		}
	}

	key := f.correctKey(t, view.SessionID)
	wrong := ""
	for _, k := range domain.AnswerKeys {
		if k != key {
			wrong = k
			break
		}
	}
	view, err = f.service.Answer(ctx, view.SessionID, wrong)
	if err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if view.Status != domain.StatusFail || !view.Failed {
		t.Fatalf("expected fail, got %+v", view)
	}
	if want := app.DefaultPrizeAmounts[4]; view.Prize != want {
		t.Fatalf("expected fireproof floor %d, got %d", want, view.Prize)
	}
	if got := f.balances.Balance("u1"); got != view.Prize {
		t.Fatalf("expected balance %d, got %d", view.Prize, got)
	}
}

func TestExpiryOnNextObservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.shift(2 * time.Hour)

	view, err = f.service.State(ctx, view.SessionID)
	if !errors.Is(err, domain.ErrTimeExpired) {
		t.Fatalf("expected ErrTimeExpired, got %v", err)
	}
	if view.Status != domain.StatusTimeout || !view.Failed {
		t.Fatalf("expected timeout view, got %+v", view)
	}

	// already terminal: plain state reads from now on
	view, err = f.service.State(ctx, view.SessionID)
	if err != nil {
		t.Fatalf("state after timeout: %v", err)
	}
	if view.Status != domain.StatusTimeout {
		t.Fatalf("timeout not sticky: %s", view.Status)
	}
}

func TestHintFlowThroughService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	view, err = f.service.UseHint(ctx, view.SessionID, domain.HintFiftyFifty)
	if err != nil {
		t.Fatalf("hint: %v", err)
	}
	if !view.UsedFiftyFifty || len(view.Question.Help.FiftyFifty) != 2 {
		t.Fatalf("expected fifty-fifty payload in view, got %+v", view.Question.Help)
	}

	if _, err := f.service.UseHint(ctx, view.SessionID, domain.HintFiftyFifty); !errors.Is(err, domain.ErrHintAlreadyUsed) {
		t.Fatalf("expected ErrHintAlreadyUsed, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.service.Answer(ctx, "nope", "a"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
