package ledger

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

// Analytics returns the collection's analytics record.
func (l *Ledger) Analytics(collection types.Address) (Analytics, error) {
	var a Analytics
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		a, err = loadAnalytics(tx, collection)
		return err
	})
	return a, err
}

// TokenRecord returns the royalty record for (collection, tokenID). Tokens
// with no history read as a zero record.
func (l *Ledger) TokenRecord(collection types.Address, tokenID uint64) (TokenRecord, error) {
	var rec TokenRecord
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		var err error
		rec, err = loadTokenRecord(tx, collection, tokenID)
		return err
	})
	return rec, err
}

// PoolBalance returns the collection's undistributed native-value pool.
func (l *Ledger) PoolBalance(collection types.Address) (uint64, error) {
	var pool uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		pool = getU64(tx.Bucket(bucketPoolsNative), collection[:])
		return nil
	})
	return pool, err
}

// TokenPoolBalance returns the collection's pool for one fungible token.
func (l *Ledger) TokenPoolBalance(collection, token types.Address) (uint64, error) {
	var pool uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		pool = getU64(tx.Bucket(bucketPoolsToken), tokenPoolKey(collection, token))
		return nil
	})
	return pool, err
}

// ClaimableBalance returns a recipient's pull-claimable native balance for
// the collection.
func (l *Ledger) ClaimableBalance(collection, recipient types.Address) (uint64, error) {
	var balance uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		balance = getU64(tx.Bucket(bucketClaimable), claimableKey(collection, recipient))
		return nil
	})
	return balance, err
}

// ActiveDistribution returns the collection's active native-value claim
// epoch, or ErrNoActiveMerkleRoot if no root has been published.
func (l *Ledger) ActiveDistribution(collection types.Address) (Distribution, error) {
	var dist Distribution
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		data := tx.Bucket(bucketDistNative).Get(collection[:])
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNoActiveMerkleRoot, collection)
		}
		return decodeGob(data, &dist)
	})
	return dist, err
}

// ActiveTokenDistribution returns the active claim epoch for one fungible
// token of the collection.
func (l *Ledger) ActiveTokenDistribution(collection, token types.Address) (Distribution, error) {
	var dist Distribution
	err := l.db.View(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		data := tx.Bucket(bucketDistToken).Get(tokenPoolKey(collection, token))
		if data == nil {
			return fmt.Errorf("%w: %s token %s", ErrNoActiveMerkleRoot, collection, token)
		}
		return decodeGob(data, &dist)
	})
	return dist, err
}

// Totals returns the global native-value accounting: total ever accrued,
// total ever claimed, and the derived outstanding balance.
func (l *Ledger) Totals() (Totals, error) {
	var t Totals
	err := l.db.View(func(tx *bbolt.Tx) error {
		totals := tx.Bucket(bucketTotals)
		t.Accrued = getU64(totals, keyTotalAccrued)
		t.Claimed = getU64(totals, keyTotalClaimed)
		if t.Claimed > t.Accrued {
			return fmt.Errorf("%w: claimed %d exceeds accrued %d", ErrPoolBalanceInconsistent, t.Claimed, t.Accrued)
		}
		t.Unclaimed = t.Accrued - t.Claimed
		return nil
	})
	return t, err
}
