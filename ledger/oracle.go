package ledger

import (
	"bytes"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/oracle"
	"github.com/openroyalty/libroyalty-go/types"
)

// SetOracleUpdateMinBlockInterval sets the minimum block gap between
// recompute triggers for the collection. Admin-only.
func (l *Ledger) SetOracleUpdateMinBlockInterval(caller, collection types.Address, interval uint64) error {
	if err := l.auth.RequireAdmin(caller); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		analytics, err := loadAnalytics(tx, collection)
		if err != nil {
			return err
		}
		analytics.OracleMinBlockInterval = interval
		return storeAnalytics(tx, collection, analytics)
	})
}

// UpdateRoyaltyDataViaOracle is the permissionless recompute trigger: it
// rebuilds the collection's volume aggregate from the token records and
// advances the rate-limiter anchor. Rejected while the minimum block
// interval since the previous trigger has not elapsed.
func (l *Ledger) UpdateRoyaltyDataViaOracle(collection types.Address) error {
	current := l.blocks.CurrentBlock()

	return l.db.Update(func(tx *bbolt.Tx) error {
		analytics, err := loadAnalytics(tx, collection)
		if err != nil {
			return err
		}

		gate := oracle.Gate{
			LastUpdateBlock:  analytics.LastOracleUpdateBlock,
			MinBlockInterval: analytics.OracleMinBlockInterval,
		}
		if err := gate.Check(current); err != nil {
			return fmt.Errorf("%w: collection %s", err, collection)
		}

		volume, err := sumCollectionVolume(tx, collection)
		if err != nil {
			return err
		}
		analytics.TotalVolume = volume
		analytics.LastOracleUpdateBlock = current
		return storeAnalytics(tx, collection, analytics)
	})
}

// sumCollectionVolume recomputes attributed volume from the token records.
func sumCollectionVolume(tx *bbolt.Tx, collection types.Address) (uint64, error) {
	var volume uint64
	c := tx.Bucket(bucketTokenRecords).Cursor()
	for k, v := c.Seek(collection[:]); k != nil && bytes.HasPrefix(k, collection[:]); k, v = c.Next() {
		var rec TokenRecord
		if err := decodeGob(v, &rec); err != nil {
			return 0, fmt.Errorf("ledger: decode token record: %w", err)
		}
		var err error
		if volume, err = addU64(volume, rec.CumulativeVolume); err != nil {
			return 0, err
		}
	}
	return volume, nil
}
