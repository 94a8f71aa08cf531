package domain

import "errors"

var (
	ErrNoActiveSession = errors.New("no active register session")
	ErrSessionActive   = errors.New("register session is already active")
	ErrSessionNotFound = errors.New("register session not found")
)
