package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ipang84/retailmaster/internal/adapter/metrics"
	"github.com/ipang84/retailmaster/internal/cash"
	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/ipang84/retailmaster/internal/platform/logging"
	"github.com/jonboulle/clockwork"
)

// Register runs the register session lifecycle against a session store.
// It assumes a single caller; concurrent use against the same backend loses updates.
type Register struct {
	store   domain.SessionStore
	clock   clockwork.Clock
	newID   func() string
	metrics *metrics.RegisterMetrics
}

type Option func(*Register)

// WithIDGenerator replaces the UUIDv7 session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Register) { r.newID = fn }
}

// WithMetrics records lifecycle metrics. Without it nothing is recorded.
func WithMetrics(m *metrics.RegisterMetrics) Option {
	return func(r *Register) { r.metrics = m }
}

func NewRegister(store domain.SessionStore, clock clockwork.Clock, opts ...Option) *Register {
	r := &Register{
		store: store,
		clock: clock,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// --- Queries ---

// HasActiveSession reports whether the current-session pointer references an active session.
func (r *Register) HasActiveSession(ctx context.Context) (bool, error) {
	current, err := r.resolveCurrent(ctx, false)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}

// CurrentSession returns the active session, or nil when none is open.
// A pointer left at a closed session counts as none.
func (r *Register) CurrentSession(ctx context.Context) (*domain.RegisterSession, error) {
	return r.resolveCurrent(ctx, false)
}

// Sessions returns every recorded session in insertion order.
func (r *Register) Sessions(ctx context.Context) ([]domain.RegisterSession, error) {
	return r.store.ListSessions(ctx)
}

// Session looks up one session in the collection.
func (r *Register) Session(ctx context.Context, id string) (domain.RegisterSession, error) {
	sessions, err := r.store.ListSessions(ctx)
	if err != nil {
		return domain.RegisterSession{}, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.RegisterSession{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
}

// PreviewClose reconciles the open session against a proposed closing count without changing anything.
func (r *Register) PreviewClose(ctx context.Context, closingCounts domain.DenominationCount) (cash.Reconciliation, error) {
	session, err := r.requireActive(ctx, "preview")
	if err != nil {
		return cash.Reconciliation{}, err
	}
	return cash.Reconcile(*session, cash.Sanitize(closingCounts)), nil
}

// --- Lifecycle ---

// StartSession opens a session with the given opening count.
// Fails with domain.ErrSessionActive if one is already open.
func (r *Register) StartSession(ctx context.Context, openingCounts domain.DenominationCount) (domain.RegisterSession, error) {
	current, err := r.resolveCurrent(ctx, false)
	if err != nil {
		return domain.RegisterSession{}, err
	}
	if current != nil {
		r.reject(ctx, "start", domain.ErrSessionActive)
		return domain.RegisterSession{}, domain.ErrSessionActive
	}

	counts := cash.Sanitize(openingCounts)
	session := domain.RegisterSession{
		ID:           r.newID(),
		StartTime:    r.clock.Now().UTC(),
		StartingCash: cash.Total(counts),
		CashCounts:   counts,
		Status:       domain.SessionActive,
		Transactions: []domain.Transaction{},
	}

	sessions, err := r.store.ListSessions(ctx)
	if err != nil {
		return domain.RegisterSession{}, err
	}
	if err := r.store.SaveSessions(ctx, append(sessions, session)); err != nil {
		return domain.RegisterSession{}, err
	}
	if err := r.store.SetCurrentSession(ctx, session); err != nil {
		return domain.RegisterSession{}, err
	}

	if r.metrics != nil {
		r.metrics.SessionsStarted.Inc()
		r.metrics.SessionOpen.Set(1)
	}
	logging.WithSession(session.ID).InfoContext(ctx, "Register session started", "starting_cash", session.StartingCash.String())
	return session, nil
}

// AddTransaction appends tx to the open session, stamping its timestamp.
// The transaction shape is not validated.
func (r *Register) AddTransaction(ctx context.Context, tx domain.Transaction) (domain.RegisterSession, error) {
	session, err := r.requireActive(ctx, "add_transaction")
	if err != nil {
		return domain.RegisterSession{}, err
	}

	entry := tx.Clone()
	entry.Timestamp = r.clock.Now().UTC()
	session.Transactions = append(session.Transactions, entry)

	if err := r.persist(ctx, *session); err != nil {
		return domain.RegisterSession{}, err
	}
	if err := r.store.SetCurrentSession(ctx, *session); err != nil {
		return domain.RegisterSession{}, err
	}

	if r.metrics != nil {
		r.metrics.Transactions.WithLabelValues(entry.Type, entry.PaymentMethod).Inc()
		amount, _ := entry.Amount.Decimal().Float64()
		r.metrics.TransactionValue.WithLabelValues(entry.Type, entry.PaymentMethod).Add(amount)
	}
	logging.WithSession(session.ID).InfoContext(ctx, "Transaction recorded",
		"type", entry.Type,
		"payment_method", entry.PaymentMethod,
		"amount", entry.Amount.String(),
		"transaction_count", len(session.Transactions))
	return *session, nil
}

// EndSession closes the open session with the given closing count and clears the current pointer.
func (r *Register) EndSession(ctx context.Context, closingCounts domain.DenominationCount) (domain.RegisterSession, error) {
	session, err := r.requireActive(ctx, "end")
	if err != nil {
		return domain.RegisterSession{}, err
	}

	counts := cash.Sanitize(closingCounts)
	reconciliation := cash.Reconcile(*session, counts)

	now := r.clock.Now().UTC()
	ending := reconciliation.CountedCash
	session.EndTime = &now
	session.EndingCash = &ending
	session.EndCashCounts = counts
	session.Status = domain.SessionClosed

	if err := r.persist(ctx, *session); err != nil {
		return domain.RegisterSession{}, err
	}
	if err := r.store.ClearCurrentSession(ctx); err != nil {
		return domain.RegisterSession{}, err
	}

	if r.metrics != nil {
		r.metrics.SessionsClosed.Inc()
		r.metrics.SessionOpen.Set(0)
		variance, _ := reconciliation.Variance.Decimal().Float64()
		r.metrics.CloseVariance.Observe(variance)
	}
	logging.WithSession(session.ID).InfoContext(ctx, "Register session closed",
		"ending_cash", ending.String(),
		"expected_cash", reconciliation.ExpectedCash.String(),
		"variance", reconciliation.Variance.String(),
		"state", string(reconciliation.State))
	return *session, nil
}

// --- Helpers ---

// resolveCurrent returns the session behind the current pointer while it is open.
// The pointer is stale when its collection entry is already closed, which
// happens when a close saved the collection but failed to clear the pointer.
// A stale pointer reads as no session and is cleared when clearStale is set.
func (r *Register) resolveCurrent(ctx context.Context, clearStale bool) (*domain.RegisterSession, error) {
	current, err := r.store.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, nil
	}

	sessions, err := r.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.ID != current.ID || s.IsActive() {
			continue
		}
		log := logging.WithSession(current.ID)
		log.WarnContext(ctx, "Current session pointer references a closed session")
		if clearStale {
			if err := r.store.ClearCurrentSession(ctx); err != nil {
				log.WarnContext(ctx, "Failed to clear stale current session pointer", "error", err)
			}
		}
		return nil, nil
	}
	return current, nil
}

func (r *Register) requireActive(ctx context.Context, op string) (*domain.RegisterSession, error) {
	current, err := r.resolveCurrent(ctx, true)
	if err != nil {
		return nil, err
	}
	if current == nil {
		r.reject(ctx, op, domain.ErrNoActiveSession)
		return nil, domain.ErrNoActiveSession
	}
	return current, nil
}

// persist replaces the session's entry in the collection by id, appending it if missing.
func (r *Register) persist(ctx context.Context, session domain.RegisterSession) error {
	sessions, err := r.store.ListSessions(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		logging.WithSession(session.ID).WarnContext(ctx, "Current session missing from collection, appending")
		sessions = append(sessions, session)
	}
	return r.store.SaveSessions(ctx, sessions)
}

func (r *Register) reject(ctx context.Context, op string, reason error) {
	if r.metrics != nil {
		label := "no_active_session"
		if errors.Is(reason, domain.ErrSessionActive) {
			label = "session_active"
		}
		r.metrics.Rejected.WithLabelValues(op, label).Inc()
	}
	slog.WarnContext(ctx, "Register operation rejected", "operation", op, "reason", reason.Error())
}
