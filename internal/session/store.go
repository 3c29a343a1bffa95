package session

import (
	"context"
	"sync"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
)

// Store holds the current authentication token: one in-memory cell mirrored
// into durable storage so it survives restarts. At most one token is live
// at a time. Token acquisition is the caller's responsibility; no network
// calls originate here.
//
// Dependents get the store injected explicitly (guard, synchronizer,
// handlers) rather than reaching for a package-level singleton.
type Store struct {
	mu     sync.RWMutex
	token  string
	cell   Cell
	logger logger.Logger
	subs   []func(token string)
}

func New(cell Cell, log logger.Logger) *Store {
	return &Store{
		cell:   cell,
		logger: log,
	}
}

// Restore loads a previously persisted token into memory. Called once at
// startup; an absent key is not an error.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.cell.Get(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		s.logger.Debug("no persisted session token found")
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Info("session token restored from durable storage")
	s.notify(token)
	return nil
}

// Login stores the token in memory and durable storage, then notifies
// subscribers. The in-memory value is set even when persistence fails:
// the session works for the process lifetime, durability is best effort.
func (s *Store) Login(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.cell.Set(ctx, token); err != nil {
		s.logger.Warn("failed to persist session token", logger.Error(err))
	}
	s.notify(token)
}

// Logout clears both the in-memory token and durable storage.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.cell.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted session token", logger.Error(err))
	}
	s.notify("")
}

// Token returns the current token, or "" when no session is live.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to run after every token change. fn receives the
// new token ("" on logout). Subscribers run synchronously on the mutating
// goroutine, so they must not call back into the store.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(token string) {
	s.mu.RLock()
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(token)
	}
}
