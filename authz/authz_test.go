package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroyalty/libroyalty-go/types"
)

var (
	admin   = types.MustParseAddress("0x00000000000000000000000000000000000000a1")
	service = types.MustParseAddress("0x00000000000000000000000000000000000000b1")
	user    = types.MustParseAddress("0x00000000000000000000000000000000000000c1")
)

func newAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	a, err := New(admin)
	require.NoError(t, err)
	return a
}

func TestNew_ZeroAdmin(t *testing.T) {
	_, err := New(types.ZeroAddress)
	assert.ErrorIs(t, err, ErrZeroAddress)
}

func TestRequireAdmin(t *testing.T) {
	a := newAuthorizer(t)

	assert.NoError(t, a.RequireAdmin(admin))
	assert.ErrorIs(t, a.RequireAdmin(user), ErrCallerIsNotAdmin)
}

func TestRequireAdminOrService(t *testing.T) {
	a := newAuthorizer(t)
	require.NoError(t, a.GrantService(admin, service))

	assert.NoError(t, a.RequireAdminOrService(admin))
	assert.NoError(t, a.RequireAdminOrService(service))
	assert.ErrorIs(t, a.RequireAdminOrService(user), ErrCallerIsNotAdminOrServiceAccount)
}

func TestGrantAdmin(t *testing.T) {
	a := newAuthorizer(t)

	// Non-admin cannot grant.
	assert.ErrorIs(t, a.GrantAdmin(user, user), ErrCallerIsNotAdmin)

	require.NoError(t, a.GrantAdmin(admin, user))
	assert.True(t, a.IsAdmin(user))

	require.NoError(t, a.RevokeAdmin(admin, user))
	assert.False(t, a.IsAdmin(user))
}

func TestGrantService(t *testing.T) {
	a := newAuthorizer(t)

	assert.ErrorIs(t, a.GrantService(service, service), ErrCallerIsNotAdmin)
	assert.ErrorIs(t, a.GrantService(admin, types.ZeroAddress), ErrZeroAddress)

	require.NoError(t, a.GrantService(admin, service))
	assert.True(t, a.IsService(service))
	assert.False(t, a.IsAdmin(service))

	require.NoError(t, a.RevokeService(admin, service))
	assert.False(t, a.IsService(service))
}
