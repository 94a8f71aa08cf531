package domain

import (
	"context"
	"time"
)

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// DenominationCount maps a denomination identifier ("100", "0.25", ...) to the
// number of bills or coins counted.
type DenominationCount map[string]int

// Clone returns an independent copy; nil stays nil.
func (c DenominationCount) Clone() DenominationCount {
	if c == nil {
		return nil
	}
	out := make(DenominationCount, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// RegisterSession tracks one cash drawer from its opening count to its closing count.
type RegisterSession struct {
	ID            string            `json:"id"`
	StartTime     time.Time         `json:"startTime"`
	StartingCash  Cents             `json:"startingCash"`
	CashCounts    DenominationCount `json:"cashCounts"`
	EndTime       *time.Time        `json:"endTime"`
	EndingCash    *Cents            `json:"endingCash"`
	EndCashCounts DenominationCount `json:"endCashCounts,omitempty"`
	Status        SessionStatus     `json:"status"`
	Transactions  []Transaction     `json:"transactions"`
}

func (s *RegisterSession) IsActive() bool {
	return s != nil && s.Status == SessionActive
}

// Clone returns a deep copy so callers cannot alias stored state.
func (s RegisterSession) Clone() RegisterSession {
	out := s
	out.CashCounts = s.CashCounts.Clone()
	out.EndCashCounts = s.EndCashCounts.Clone()
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	if s.EndingCash != nil {
		c := *s.EndingCash
		out.EndingCash = &c
	}
	if s.Transactions != nil {
		out.Transactions = make([]Transaction, len(s.Transactions))
		for i, tx := range s.Transactions {
			out.Transactions[i] = tx.Clone()
		}
	}
	return out
}

// SessionStore persists the all-sessions collection and the current-session pointer.
// The two records are written independently; callers must tolerate a pointer that
// disagrees with the collection after a crash between writes.
type SessionStore interface {
	// Collection

	ListSessions(ctx context.Context) ([]RegisterSession, error)
	SaveSessions(ctx context.Context, sessions []RegisterSession) error

	// Current-session pointer

	CurrentSession(ctx context.Context) (*RegisterSession, error)
	SetCurrentSession(ctx context.Context, session RegisterSession) error
	ClearCurrentSession(ctx context.Context) error
}

// KeyValueStore is the local persistent key-value storage the session store is built on.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
