package cli

import "errors"

var (
	ErrNoExportTarget = errors.New("give a session id or --all")
	ErrBadIndex       = errors.New("player number out of range")
)
