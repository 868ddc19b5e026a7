package tracker

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNothingToExport = errors.New("no sessions recorded yet")
)
