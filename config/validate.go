package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/openroyalty/libroyalty-go/types"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DBPath == "" {
		return ErrEmptyDBPath
	}

	if err := validateAddr(cfg.ListenAddr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListenAddr, err)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if cfg.BlockTime <= 0 {
		return ErrInvalidBlockTime
	}

	if _, err := cfg.Genesis(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGenesisTime, err)
	}

	admin, err := types.ParseAddress(cfg.Admin)
	if err != nil {
		return fmt.Errorf("%w: admin: %w", ErrInvalidActorAddress, err)
	}
	if admin.IsZero() {
		return fmt.Errorf("%w: admin is the zero address", ErrInvalidActorAddress)
	}

	for _, s := range cfg.ServiceAccounts {
		if _, err := types.ParseAddress(s); err != nil {
			return fmt.Errorf("%w: service account %q: %w", ErrInvalidActorAddress, s, err)
		}
	}

	for key, addr := range cfg.APIKeys {
		if key == "" {
			return ErrEmptyAPIKey
		}
		if _, err := types.ParseAddress(addr); err != nil {
			return fmt.Errorf("%w: api key actor %q: %w", ErrInvalidActorAddress, addr, err)
		}
	}

	return nil
}

// validateAddr checks that addr is a valid host:port address.
func validateAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	return err
}
