package memory

import (
	"context"
	"sync"
)

// BalanceStore keeps user balances in memory.
type BalanceStore struct {
	mu       sync.RWMutex
	balances map[string]int64
}

func NewBalanceStore() *BalanceStore {
	return &BalanceStore{balances: make(map[string]int64)}
}

func (s *BalanceStore) Credit(_ context.Context, userID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] += amount
	return nil
}

// Balance reads a user's accumulated winnings.
func (s *BalanceStore) Balance(userID string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[userID]
}
