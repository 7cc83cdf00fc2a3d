// Package ledger implements a centralized royalty ledger for a family of
// token collections: it accrues sale-royalty obligations, tracks per-recipient
// claimable balances, and pays out claims by direct pull-withdrawal or by
// Merkle-verified batch distribution, in native value and arbitrary
// fungible-token currencies.
//
// Every mutating operation runs inside a single bbolt write transaction, so
// a failure at any point — including mid-loop in a batch and including a
// failed outbound transfer — rolls the whole call back.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/authz"
)

// Ledger is the facade over the registry, accrual, Merkle claim, oracle and
// attribution state. It is safe for concurrent use; bbolt serializes writers,
// which gives every operation the atomic-per-call semantics the accounting
// invariants rely on.
type Ledger struct {
	db       *bbolt.DB
	auth     *authz.Authorizer
	treasury Treasury
	blocks   BlockSource
	now      func() time.Time
}

// Option configures a Ledger at open time.
type Option func(*Ledger)

// WithClock overrides the wall clock used to timestamp distributions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Open opens or creates the ledger database at dbPath. The parent directory
// is created if it does not exist.
func Open(dbPath string, auth *authz.Authorizer, treasury Treasury, blocks BlockSource, opts ...Option) (*Ledger, error) {
	if auth == nil || treasury == nil || blocks == nil {
		return nil, fmt.Errorf("ledger: authorizer, treasury and block source are required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("ledger: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	l := &Ledger{
		db:       db,
		auth:     auth,
		treasury: treasury,
		blocks:   blocks,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error { return l.db.Close() }

// Authorizer exposes the role service, e.g. for transports that need to
// answer role queries.
func (l *Ledger) Authorizer() *authz.Authorizer { return l.auth }
