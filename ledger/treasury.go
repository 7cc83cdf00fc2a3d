package ledger

import (
	"context"

	"github.com/openroyalty/libroyalty-go/types"
)

// Treasury moves value across the ledger boundary. The ledger updates its
// books first and calls the treasury inside the same transaction scope; a
// treasury error aborts the transaction, so no state marks funds as paid
// that were not.
type Treasury interface {
	// TransferNative pays native value out to a recipient.
	TransferNative(ctx context.Context, to types.Address, amount uint64) error

	// PullToken collects a fungible-token deposit from a payer that has
	// pre-authorized the transfer.
	PullToken(ctx context.Context, token, from types.Address, amount uint64) error

	// TransferToken pays fungible tokens out to a recipient.
	TransferToken(ctx context.Context, token, to types.Address, amount uint64) error
}

// BlockSource reports the current block of the monotonic counter that the
// oracle rate limiter and registration seeding are expressed against.
type BlockSource interface {
	CurrentBlock() uint64
}
