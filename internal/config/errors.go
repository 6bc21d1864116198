package config

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMissingCredential = errors.New("missing required credential")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrLoadConfig        = errors.New("load config failed")
)
