package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

func testGame(id, userID string) *app.Game {
	rec := domain.GameRecord{
		ID:     id,
		UserID: userID,
		Questions: []domain.QuestionRecord{
			{
				Question:   domain.Question{ID: "q1", Text: "pick", Level: 0, Answers: [4]string{"r", "w1", "w2", "w3"}},
				Variants:   map[string]string{"a": "r", "b": "w1", "c": "w2", "d": "w3"},
				CorrectKey: "a",
			},
		},
		CreatedAt: time.Now(),
	}
	return app.RestoreGame(rec, app.Rules{})
}

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	game := testGame("g1", "u1")

	if err := store.Create(ctx, game); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID() != "g1" {
		t.Fatalf("expected g1, got %s", got.ID())
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreOneActivePerUser(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	first := testGame("g1", "u1")
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, testGame("g2", "u1")); !errors.Is(err, domain.ErrGameAlreadyInProgress) {
		t.Fatalf("expected ErrGameAlreadyInProgress, got %v", err)
	}
	// another user is unaffected
	if err := store.Create(ctx, testGame("g3", "u2")); err != nil {
		t.Fatalf("create for u2: %v", err)
	}

	if err := first.CashOut(); err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Create(ctx, testGame("g4", "u1")); err != nil {
		t.Fatalf("create after finish: %v", err)
	}
}

func TestBalanceStoreAccumulates(t *testing.T) {
	ctx := context.Background()
	store := NewBalanceStore()

	if err := store.Credit(ctx, "u1", 100); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := store.Credit(ctx, "u1", 250); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if got := store.Balance("u1"); got != 350 {
		t.Fatalf("expected 350, got %d", got)
	}
	if got := store.Balance("u2"); got != 0 {
		t.Fatalf("expected 0 for unknown user, got %d", got)
	}
}
