package ledger

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

// UpdateAccruedRoyalties credits recipients' claimable balances directly,
// outside the attribution pipeline. Used by the service actor for manual or
// off-pipeline corrections. Admin or service account only.
func (l *Ledger) UpdateAccruedRoyalties(caller, collection types.Address, recipients []types.Address, amounts []uint64) error {
	if err := l.auth.RequireAdminOrService(caller); err != nil {
		return err
	}
	if len(recipients) != len(amounts) {
		return ErrArrayLengthMismatch
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		claimable := tx.Bucket(bucketClaimable)
		totals := tx.Bucket(bucketTotals)
		for i, recipient := range recipients {
			if err := bumpU64(claimable, claimableKey(collection, recipient), amounts[i]); err != nil {
				return fmt.Errorf("recipient %d: %w", i, err)
			}
			if err := bumpU64(totals, keyTotalAccrued, amounts[i]); err != nil {
				return fmt.Errorf("recipient %d: %w", i, err)
			}
		}
		return nil
	})
}

// ClaimRoyalties pays out up to the caller's own claimable-native balance
// for the collection. The balances are decremented before the outbound
// transfer; a transfer failure rolls the decrement back.
func (l *Ledger) ClaimRoyalties(ctx context.Context, caller, collection types.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}

		claimable := tx.Bucket(bucketClaimable)
		key := claimableKey(collection, caller)
		balance := getU64(claimable, key)
		if amount > balance {
			return fmt.Errorf("%w: have %d, want %d", ErrInsufficientUnclaimedRoyalties, balance, amount)
		}

		pools := tx.Bucket(bucketPoolsNative)
		pool := getU64(pools, collection[:])
		if amount > pool {
			// Claimable balances are only ever credited against expected
			// pool funding, so this is a bookkeeping fault.
			return fmt.Errorf("%w: pool %d, claim %d", ErrPoolBalanceInconsistent, pool, amount)
		}

		if err := putU64(claimable, key, balance-amount); err != nil {
			return err
		}
		if err := putU64(pools, collection[:], pool-amount); err != nil {
			return err
		}
		if err := bumpU64(tx.Bucket(bucketTotals), keyTotalClaimed, amount); err != nil {
			return err
		}

		return l.treasury.TransferNative(ctx, caller, amount)
	})
}
