package httpd

import (
	"errors"
	"net/http"

	"github.com/openroyalty/libroyalty-go/authz"
	"github.com/openroyalty/libroyalty-go/ledger"
	"github.com/openroyalty/libroyalty-go/oracle"
)

// statusFor maps ledger errors onto HTTP status codes. Unknown errors are
// internal faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, authz.ErrCallerIsNotAdmin),
		errors.Is(err, authz.ErrCallerIsNotAdminOrServiceAccount),
		errors.Is(err, ledger.ErrNotCollectionCreatorOrAdmin),
		errors.Is(err, ledger.ErrCallerIsNotCollectionOwner):
		return http.StatusForbidden

	case errors.Is(err, ledger.ErrCollectionNotRegistered),
		errors.Is(err, ledger.ErrNoActiveMerkleRoot):
		return http.StatusNotFound

	case errors.Is(err, ledger.ErrAlreadyRegistered),
		errors.Is(err, ledger.ErrAlreadyClaimed),
		errors.Is(err, ledger.ErrMinterAlreadySet),
		errors.Is(err, ledger.ErrInsufficientUnclaimedRoyalties),
		errors.Is(err, ledger.ErrInsufficientBalanceForRoot),
		errors.Is(err, ledger.ErrNotEnoughTokensToDistribute):
		return http.StatusConflict

	case errors.Is(err, oracle.ErrUpdateTooFrequent):
		return http.StatusTooManyRequests

	case errors.Is(err, ledger.ErrInvalidConfiguration),
		errors.Is(err, ledger.ErrCreatorCannotBeZeroAddress),
		errors.Is(err, ledger.ErrArrayLengthMismatch),
		errors.Is(err, ledger.ErrInvalidProof),
		errors.Is(err, ledger.ErrZeroAmount),
		errors.Is(err, authz.ErrZeroAddress),
		errors.Is(err, ledger.ErrAmountOverflow),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
