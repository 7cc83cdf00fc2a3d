package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), a[19])
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", a.String())
}

func TestParseAddress_NoPrefix(t *testing.T) {
	a, err := ParseAddress("1122334455667788990011223344556677889900")
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), a[0])
}

func TestParseAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "0x1234"},
		{"too long", "0x112233445566778899001122334455667788990011"},
		{"not hex", "0xzz22334455667788990011223344556677889900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.in)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestAddress_IsZero(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())

	a := MustParseAddress("0x0000000000000000000000000000000000000001")
	assert.False(t, a.IsZero())
}

func TestAddress_RoundTrip(t *testing.T) {
	in := "0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	a, err := ParseAddress(in)
	require.NoError(t, err)

	back, err := ParseAddress(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, back)
}
