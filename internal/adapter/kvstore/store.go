// Package kvstore implements the register session store on top of any
// key-value backend. Each record is one JSON blob under its own key.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ipang84/retailmaster/internal/domain"
)

const (
	sessionsKeySuffix = "register_sessions"
	currentKeySuffix  = "current_register_session"
)

// Store is a domain.SessionStore backed by a domain.KeyValueStore.
type Store struct {
	kv          domain.KeyValueStore
	sessionsKey string
	currentKey  string
}

// New creates a Store whose keys are namespaced by prefix ("" for none).
func New(kv domain.KeyValueStore, prefix string) *Store {
	return &Store{
		kv:          kv,
		sessionsKey: key(prefix, sessionsKeySuffix),
		currentKey:  key(prefix, currentKeySuffix),
	}
}

func key(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + ":" + suffix
}

// --- Collection ---

func (s *Store) ListSessions(ctx context.Context) ([]domain.RegisterSession, error) {
	raw, found, err := s.kv.Get(ctx, s.sessionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	if !found || raw == "" {
		return []domain.RegisterSession{}, nil
	}

	var sessions []domain.RegisterSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.RegisterSession{}
	}
	return sessions, nil
}

func (s *Store) SaveSessions(ctx context.Context, sessions []domain.RegisterSession) error {
	if sessions == nil {
		sessions = []domain.RegisterSession{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := s.kv.Set(ctx, s.sessionsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}

// --- Current-session pointer ---

func (s *Store) CurrentSession(ctx context.Context) (*domain.RegisterSession, error) {
	raw, found, err := s.kv.Get(ctx, s.currentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read current session: %w", err)
	}
	if !found || raw == "" || raw == "null" {
		return nil, nil
	}

	var session domain.RegisterSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current session: %w", err)
	}
	return &session, nil
}

func (s *Store) SetCurrentSession(ctx context.Context, session domain.RegisterSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal current session: %w", err)
	}
	if err := s.kv.Set(ctx, s.currentKey, string(data)); err != nil {
		return fmt.Errorf("failed to write current session: %w", err)
	}
	return nil
}

func (s *Store) ClearCurrentSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.currentKey); err != nil {
		return fmt.Errorf("failed to clear current session: %w", err)
	}
	return nil
}
