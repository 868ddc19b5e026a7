package config

import "errors"

var (
	ErrEmptyDBPath     = errors.New("db_path must not be empty")
	ErrEmptyExportDir  = errors.New("export_dir must not be empty")
	ErrInvalidLogLevel = errors.New("invalid log_level")
)
