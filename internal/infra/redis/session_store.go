package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

// SessionStore persists game sessions as JSON records in Redis, so a session
// can resume on any instance. An active-game key per user backs the
// one-unfinished-game policy.
type SessionStore struct {
	client *redis.Client
	rules  app.Rules
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, rules app.Rules, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, rules: rules, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, game *app.Game) error {
	ok, err := s.client.SetNX(ctx, s.activeKey(game.UserID()), game.ID(), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("mark active game: %w", err)
	}
	if !ok {
		activeID, err := s.client.Get(ctx, s.activeKey(game.UserID())).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("read active game: %w", err)
		}
		if activeID != "" {
			if existing, err := s.Get(ctx, activeID); err == nil && !existing.Finished() {
				return domain.ErrGameAlreadyInProgress
			}
		}
		if err := s.client.Set(ctx, s.activeKey(game.UserID()), game.ID(), s.ttl).Err(); err != nil {
			return fmt.Errorf("mark active game: %w", err)
		}
	}
	return s.write(ctx, game)
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*app.Game, error) {
	raw, err := s.client.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var rec domain.GameRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return app.RestoreGame(rec, s.rules), nil
}

func (s *SessionStore) Save(ctx context.Context, game *app.Game) error {
	if err := s.write(ctx, game); err != nil {
		return err
	}
	if game.Finished() {
		activeID, err := s.client.Get(ctx, s.activeKey(game.UserID())).Result()
		if err == nil && activeID == game.ID() {
			_ = s.client.Del(ctx, s.activeKey(game.UserID())).Err()
		}
	}
	return nil
}

func (s *SessionStore) write(ctx context.Context, game *app.Game) error {
	raw, err := json.Marshal(game.Record())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.sessionKey(game.ID()), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) sessionKey(sessionID string) string {
	return "game:session:" + sessionID
}

func (s *SessionStore) activeKey(userID string) string {
	return "game:active:" + userID
}
