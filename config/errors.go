package config

import "errors"

var (
	// ErrEmptyDBPath indicates no ledger database path was configured.
	ErrEmptyDBPath = errors.New("config: db_path is empty")

	// ErrInvalidListenAddr indicates the listen address is not host:port.
	ErrInvalidListenAddr = errors.New("config: invalid listen address")

	// ErrInvalidLogLevel indicates an unknown log level string.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrInvalidBlockTime indicates a non-positive block time.
	ErrInvalidBlockTime = errors.New("config: block time must be positive")

	// ErrInvalidGenesisTime indicates a genesis timestamp that is not RFC3339.
	ErrInvalidGenesisTime = errors.New("config: invalid genesis time")

	// ErrInvalidActorAddress indicates a malformed admin, service or API-key address.
	ErrInvalidActorAddress = errors.New("config: invalid actor address")

	// ErrEmptyAPIKey indicates an empty API key string.
	ErrEmptyAPIKey = errors.New("config: empty api key")
)
