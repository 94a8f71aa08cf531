// Package correlation tags every log record of one operator command with a
// shared id and the command name.
package correlation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

type contextKey struct{}

type scope struct {
	id      string
	command string
}

// NewID generates an 8-character hex correlation ID (4 random bytes).
func NewID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithID returns a new context carrying the given correlation ID.
func WithID(ctx context.Context, id string) context.Context {
	s, _ := ctx.Value(contextKey{}).(scope)
	s.id = id
	return context.WithValue(ctx, contextKey{}, s)
}

// WithCommand returns a context carrying a fresh correlation ID and the command name.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, contextKey{}, scope{id: NewID(), command: command})
}

// ID extracts the correlation ID from ctx, returning ("", false) if not present.
func ID(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(contextKey{}).(scope)
	return s.id, ok && s.id != ""
}

// Command extracts the command name from ctx.
func Command(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(contextKey{}).(scope)
	return s.command, ok && s.command != ""
}

// Handler wraps an existing slog.Handler to inject "correlation_id" and
// "command" attributes when the context carries them.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a correlation-aware handler wrapping the given handler.
func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ID(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", id))
	}
	if cmd, ok := Command(ctx); ok {
		r.AddAttrs(slog.String("command", cmd))
	}
	if err := h.inner.Handle(ctx, r); err != nil {
		return fmt.Errorf("correlation handler: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
