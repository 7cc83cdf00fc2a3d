package types

import "errors"

var (
	// ErrInvalidAddress indicates the address string is not valid 20-byte hex.
	ErrInvalidAddress = errors.New("types: invalid address")
)
