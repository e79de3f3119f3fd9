package config

import "errors"

// Validation errors returned when a configuration group is incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates a bad port, mode or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidTLSConfigs indicates HTTPS mode without key or certificate paths.
	ErrInvalidTLSConfigs = errors.New("invalid tls configuration")
	// ErrInvalidAppConfigs indicates non-positive borrowing rules.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
