package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BalanceStore accumulates user winnings with Redis counters.
type BalanceStore struct {
	client *redis.Client
}

func NewBalanceStore(client *redis.Client) *BalanceStore {
	return &BalanceStore{client: client}
}

func (s *BalanceStore) Credit(ctx context.Context, userID string, amount int64) error {
	if err := s.client.IncrBy(ctx, s.key(userID), amount).Err(); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

// Balance reads a user's accumulated winnings.
func (s *BalanceStore) Balance(ctx context.Context, userID string) (int64, error) {
	value, err := s.client.Get(ctx, s.key(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return value, nil
}

func (s *BalanceStore) key(userID string) string {
	return "game:balance:" + userID
}
