package ledger

import "errors"

var (
	// ErrCollectionNotRegistered indicates the collection has no registry entry.
	ErrCollectionNotRegistered = errors.New("ledger: collection not registered")

	// ErrAlreadyRegistered indicates a second registration for the same collection.
	ErrAlreadyRegistered = errors.New("ledger: collection already registered")

	// ErrInvalidConfiguration indicates a bad fee or share split at registration.
	ErrInvalidConfiguration = errors.New("ledger: invalid collection configuration")

	// ErrCreatorCannotBeZeroAddress indicates a zero creator address.
	ErrCreatorCannotBeZeroAddress = errors.New("ledger: creator cannot be zero address")

	// ErrNotCollectionCreatorOrAdmin indicates the caller is neither the registered creator nor an admin.
	ErrNotCollectionCreatorOrAdmin = errors.New("ledger: caller is not collection creator or admin")

	// ErrCallerIsNotCollectionOwner indicates a collection-owner-only sync hook was called by someone else.
	ErrCallerIsNotCollectionOwner = errors.New("ledger: caller is not collection owner")

	// ErrArrayLengthMismatch indicates parallel batch arrays of unequal length.
	ErrArrayLengthMismatch = errors.New("ledger: array length mismatch")

	// ErrInsufficientUnclaimedRoyalties indicates a pull-claim above the caller's claimable balance.
	ErrInsufficientUnclaimedRoyalties = errors.New("ledger: insufficient unclaimed royalties")

	// ErrInsufficientBalanceForRoot indicates the collection pool cannot cover a Merkle commitment or claim.
	ErrInsufficientBalanceForRoot = errors.New("ledger: insufficient pool balance for merkle root")

	// ErrNoActiveMerkleRoot indicates no distribution root is set for the collection and currency.
	ErrNoActiveMerkleRoot = errors.New("ledger: no active merkle root")

	// ErrInvalidProof indicates the Merkle proof does not verify against the active root.
	ErrInvalidProof = errors.New("ledger: invalid merkle proof")

	// ErrAlreadyClaimed indicates the leaf was already paid under the current root.
	ErrAlreadyClaimed = errors.New("ledger: leaf already claimed")

	// ErrNotEnoughTokensToDistribute indicates the collection's fungible-token pool cannot cover the amount.
	ErrNotEnoughTokensToDistribute = errors.New("ledger: not enough tokens to distribute for collection")

	// ErrMinterAlreadySet indicates an attempt to overwrite an immutable minter assignment.
	ErrMinterAlreadySet = errors.New("ledger: token minter already set")

	// ErrZeroAmount indicates a zero-value deposit or claim.
	ErrZeroAmount = errors.New("ledger: zero amount")

	// ErrAmountOverflow indicates an accumulator would exceed the 64-bit range.
	ErrAmountOverflow = errors.New("ledger: amount overflow")

	// ErrPoolBalanceInconsistent indicates a pool below the balance a claim path requires.
	// This is a bookkeeping fault, not a caller error.
	ErrPoolBalanceInconsistent = errors.New("ledger: pool balance inconsistent with claimable balances")
)
