package session

import "errors"

var (
	ErrSessionInProgress = errors.New("a session is already in progress")
	ErrNoActiveSession   = errors.New("no active session")
	ErrInvalidKind       = errors.New("session type must be Practice or Game")
	ErrInvalidDelta      = errors.New("mark must be +1 or -1")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrReservedCategory  = errors.New("attendance is managed through SetAttendance")
	ErrEmptyPlayer       = errors.New("player name must not be empty")
)
