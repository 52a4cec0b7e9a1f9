package memory

import (
	"context"
	"sync"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// The active index enforces one unfinished game per user.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Game
	active   map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Game),
		active:   make(map[string]string),
	}
}

func (s *SessionStore) Create(_ context.Context, game *app.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if activeID, ok := s.active[game.UserID()]; ok {
		if existing, ok := s.sessions[activeID]; ok && !existing.Finished() {
			return domain.ErrGameAlreadyInProgress
		}
	}
	s.sessions[game.ID()] = game
	s.active[game.UserID()] = game.ID()
	return nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (*app.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game, nil
}

func (s *SessionStore) Save(_ context.Context, game *app.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[game.ID()] = game
	if game.Finished() && s.active[game.UserID()] == game.ID() {
		delete(s.active, game.UserID())
	}
	return nil
}
