package ledger

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

// RegisterCollection records a collection's royalty configuration and seeds
// its analytics, anchoring the oracle gate to the current block. Admin-only.
func (l *Ledger) RegisterCollection(caller, collection types.Address, cfg CollectionConfig) error {
	if err := l.auth.RequireAdmin(caller); err != nil {
		return err
	}
	if collection.IsZero() {
		return fmt.Errorf("%w: zero collection address", ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		configs := tx.Bucket(bucketConfigs)
		if configs.Get(collection[:]) != nil {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, collection)
		}
		if err := putGob(configs, collection[:], cfg); err != nil {
			return err
		}
		return storeAnalytics(tx, collection, Analytics{
			LastOracleUpdateBlock: l.blocks.CurrentBlock(),
			TokenRoyaltyCollected: make(map[types.Address]uint64),
		})
	})
}

// Config returns the collection's registered configuration.
func (l *Ledger) Config(collection types.Address) (CollectionConfig, error) {
	var cfg CollectionConfig
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		cfg, err = requireConfig(tx, collection)
		return err
	})
	return cfg, err
}

// UpdateCreatorAddress redirects future creator-share credits. Callable by
// an admin or by the collection's current registered creator.
func (l *Ledger) UpdateCreatorAddress(caller, collection, newCreator types.Address) error {
	if newCreator.IsZero() {
		return ErrCreatorCannotBeZeroAddress
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		cfg, err := requireConfig(tx, collection)
		if err != nil {
			return err
		}
		if !l.auth.IsAdmin(caller) && caller != cfg.Creator {
			return ErrNotCollectionCreatorOrAdmin
		}
		cfg.Creator = newCreator
		return putGob(tx.Bucket(bucketConfigs), collection[:], cfg)
	})
}
