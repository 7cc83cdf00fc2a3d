package authz

import (
	"sync"

	"github.com/openroyalty/libroyalty-go/types"
)

// Authorizer answers the role questions every mutating ledger entry point
// asks: is the caller an admin, and is it the off-chain service account.
// Collection-level creator and owner checks live in the ledger because they
// depend on registry state.
type Authorizer struct {
	mu       sync.RWMutex
	admins   map[types.Address]bool
	services map[types.Address]bool
}

// New creates an Authorizer with one initial admin.
func New(initialAdmin types.Address) (*Authorizer, error) {
	if initialAdmin.IsZero() {
		return nil, ErrZeroAddress
	}
	return &Authorizer{
		admins:   map[types.Address]bool{initialAdmin: true},
		services: make(map[types.Address]bool),
	}, nil
}

// GrantAdmin adds an admin. Admin-only.
func (a *Authorizer) GrantAdmin(caller, account types.Address) error {
	if err := a.RequireAdmin(caller); err != nil {
		return err
	}
	if account.IsZero() {
		return ErrZeroAddress
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.admins[account] = true
	return nil
}

// RevokeAdmin removes an admin. Admin-only.
func (a *Authorizer) RevokeAdmin(caller, account types.Address) error {
	if err := a.RequireAdmin(caller); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.admins, account)
	return nil
}

// GrantService adds a service account. Admin-only.
func (a *Authorizer) GrantService(caller, account types.Address) error {
	if err := a.RequireAdmin(caller); err != nil {
		return err
	}
	if account.IsZero() {
		return ErrZeroAddress
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.services[account] = true
	return nil
}

// RevokeService removes a service account. Admin-only.
func (a *Authorizer) RevokeService(caller, account types.Address) error {
	if err := a.RequireAdmin(caller); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.services, account)
	return nil
}

// IsAdmin reports whether account holds the admin role.
func (a *Authorizer) IsAdmin(account types.Address) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.admins[account]
}

// IsService reports whether account holds the service-account role.
func (a *Authorizer) IsService(account types.Address) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.services[account]
}

// RequireAdmin returns ErrCallerIsNotAdmin unless caller is an admin.
func (a *Authorizer) RequireAdmin(caller types.Address) error {
	if !a.IsAdmin(caller) {
		return ErrCallerIsNotAdmin
	}
	return nil
}

// RequireAdminOrService returns ErrCallerIsNotAdminOrServiceAccount unless
// caller holds the admin or service-account role.
func (a *Authorizer) RequireAdminOrService(caller types.Address) error {
	if !a.IsAdmin(caller) && !a.IsService(caller) {
		return ErrCallerIsNotAdminOrServiceAccount
	}
	return nil
}
