package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address identifies an account: a collection contract, a recipient,
// a fungible-token contract, or an actor calling into the ledger.
type Address [AddressSize]byte

// ZeroAddress is the all-zero address.
var ZeroAddress Address

// ParseAddress decodes a 0x-prefixed (or bare) 40-character hex string.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != AddressSize*2 {
		return a, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidAddress, AddressSize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	copy(a[:], raw)
	return a, nil
}

// MustParseAddress is ParseAddress that panics on error. For tests and
// static configuration values only.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the address as 0x-prefixed lowercase hex.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns the address as a byte slice copy.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
