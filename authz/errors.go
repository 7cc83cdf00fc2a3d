package authz

import "errors"

var (
	// ErrCallerIsNotAdmin indicates an admin-only operation was called without the admin role.
	ErrCallerIsNotAdmin = errors.New("authz: caller is not admin")

	// ErrCallerIsNotAdminOrServiceAccount indicates the caller holds neither the admin nor the service-account role.
	ErrCallerIsNotAdminOrServiceAccount = errors.New("authz: caller is not admin or service account")

	// ErrZeroAddress indicates a role grant to the zero address.
	ErrZeroAddress = errors.New("authz: zero address")
)
