package ledger

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

// AddCollectionRoyalties credits native value to the collection's pool.
// Funding is permissionless; the value itself arrives out of band (the
// caller forwarded it to the treasury before reporting it here).
func (l *Ledger) AddCollectionRoyalties(collection types.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		analytics, err := loadAnalytics(tx, collection)
		if err != nil {
			return err
		}
		if analytics.TotalRoyaltyCollectedNative, err = addU64(analytics.TotalRoyaltyCollectedNative, amount); err != nil {
			return err
		}
		if err := bumpU64(tx.Bucket(bucketPoolsNative), collection[:], amount); err != nil {
			return err
		}
		return storeAnalytics(tx, collection, analytics)
	})
}

// ReceiveNative is the fallback deposit path: a registered collection
// contract forwarded value directly, so the sender is the collection the
// funds are attributed to.
func (l *Ledger) ReceiveNative(from types.Address, amount uint64) error {
	return l.AddCollectionRoyalties(from, amount)
}

// AddCollectionTokenRoyalties credits a fungible-token deposit to the
// collection's per-token pool, pulling the tokens from the caller through
// the treasury. A failed pull aborts the credit.
func (l *Ledger) AddCollectionTokenRoyalties(ctx context.Context, caller, collection, token types.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		analytics, err := loadAnalytics(tx, collection)
		if err != nil {
			return err
		}
		collected, err := addU64(analytics.TokenRoyaltyCollected[token], amount)
		if err != nil {
			return err
		}
		analytics.TokenRoyaltyCollected[token] = collected
		if err := bumpU64(tx.Bucket(bucketPoolsToken), tokenPoolKey(collection, token), amount); err != nil {
			return err
		}
		if err := storeAnalytics(tx, collection, analytics); err != nil {
			return err
		}
		return l.treasury.PullToken(ctx, token, caller, amount)
	})
}
