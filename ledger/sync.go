package ledger

import (
	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

// UpdateTokenHolder mirrors an external ownership change into the token
// record. The ledger never observes transfers itself, so the stored holder
// is only as fresh as the last call here. Admin or service account only.
func (l *Ledger) UpdateTokenHolder(caller, collection types.Address, tokenID uint64, newHolder types.Address) error {
	if err := l.auth.RequireAdminOrService(caller); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		rec, err := loadTokenRecord(tx, collection, tokenID)
		if err != nil {
			return err
		}
		rec.CurrentHolder = newHolder
		return storeTokenRecord(tx, collection, tokenID, rec)
	})
}

// SetTokenMinter assigns the token's minter ahead of its first attributed
// sale. The minter is immutable once set. Callable by an admin, the service
// account, or the collection itself.
func (l *Ledger) SetTokenMinter(caller, collection types.Address, tokenID uint64, minter types.Address) error {
	if l.auth.RequireAdminOrService(caller) != nil && caller != collection {
		return ErrCallerIsNotCollectionOwner
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}
		rec, err := loadTokenRecord(tx, collection, tokenID)
		if err != nil {
			return err
		}
		if !rec.Minter.IsZero() {
			return ErrMinterAlreadySet
		}
		rec.Minter = minter
		return storeTokenRecord(tx, collection, tokenID, rec)
	})
}
