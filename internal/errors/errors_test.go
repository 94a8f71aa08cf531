package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("invalid amount")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "invalid amount", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, 64, err.ExitCode())
	assert.Equal(t, "validation: invalid amount", err.Error())
}

func TestInternalError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := InternalError("save failed", cause)

	assert.Equal(t, 1, err.ExitCode())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: save failed: disk full", err.Error())
}

func TestWithContext(t *testing.T) {
	err := ValidationError("bad count").WithContext("denomination", "0.25").WithContext("value", -1)

	assert.Equal(t, "0.25", err.Context["denomination"])
	assert.Equal(t, -1, err.Context["value"])

	var nilCtx Error
	nilCtx.WithContext("k", "v")
	assert.Equal(t, "v", nilCtx.Context["k"])
}

func TestToResponse(t *testing.T) {
	resp := ConflictError("already open", nil).WithContext("session_id", "s1").ToResponse()

	assert.Equal(t, "already open", resp.Error)
	assert.Equal(t, TypeConflict, resp.Type)
	assert.Equal(t, map[string]any{"session_id": "s1"}, resp.Context)
}

func TestAsStructuredError(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		wantType ErrorType
		wantExit int
	}{
		{"no active session", fmt.Errorf("end: %w", domain.ErrNoActiveSession), TypeConflict, 2},
		{"session active", domain.ErrSessionActive, TypeConflict, 2},
		{"not found", fmt.Errorf("%w: x", domain.ErrSessionNotFound), TypeNotFound, 3},
		{"other", errors.New("boom"), TypeInternal, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsStructuredError(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantExit, got.ExitCode())
			assert.ErrorIs(t, got, tt.in)
		})
	}
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	orig := ValidationError("bad")
	assert.Same(t, orig, AsStructuredError(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, AsStructuredError(nil))
}
