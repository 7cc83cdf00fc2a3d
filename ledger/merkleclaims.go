package ledger

import (
	"context"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/merkle"
	"github.com/openroyalty/libroyalty-go/types"
)

// SubmitRoyaltyMerkleRoot publishes a new native-value distribution root for
// the collection, opening a fresh claim epoch: every leaf under the new root
// starts unclaimed, and proofs against the previous root stop working. The
// pool must already hold the committed amount. Admin or service only.
//
// Global accounting: the committed amount counts as accrued; whatever the
// previous epoch left unclaimed is released, so conservation holds across
// replacements.
func (l *Ledger) SubmitRoyaltyMerkleRoot(caller, collection types.Address, root chainhash.Hash, totalAmount uint64) error {
	if err := l.auth.RequireAdminOrService(caller); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}

		pool := getU64(tx.Bucket(bucketPoolsNative), collection[:])
		if totalAmount > pool {
			return fmt.Errorf("%w: pool %d, committed %d", ErrInsufficientBalanceForRoot, pool, totalAmount)
		}

		dists := tx.Bucket(bucketDistNative)
		next := Distribution{
			Root:           root,
			TotalCommitted: totalAmount,
			Generation:     1,
			PublishedAt:    l.now().Unix(),
		}

		totals := tx.Bucket(bucketTotals)
		if data := dists.Get(collection[:]); data != nil {
			var prev Distribution
			if err := decodeGob(data, &prev); err != nil {
				return fmt.Errorf("ledger: decode distribution: %w", err)
			}
			next.Generation = prev.Generation + 1

			// Release the lapsed epoch's unclaimed commitment.
			accrued := getU64(totals, keyTotalAccrued)
			leftover := prev.Unclaimed()
			if leftover > accrued {
				return fmt.Errorf("%w: accrued %d below lapsed commitment %d", ErrPoolBalanceInconsistent, accrued, leftover)
			}
			if err := putU64(totals, keyTotalAccrued, accrued-leftover); err != nil {
				return err
			}
		}

		if err := bumpU64(totals, keyTotalAccrued, totalAmount); err != nil {
			return err
		}
		return putGob(dists, collection[:], next)
	})
}

// SubmitTokenRoyaltyMerkleRoot publishes a new distribution root for one
// fungible-token currency of the collection. Same epoch semantics as the
// native path; the per-token pool must cover the commitment. Token
// commitments do not enter the native global totals.
func (l *Ledger) SubmitTokenRoyaltyMerkleRoot(caller, collection, token types.Address, root chainhash.Hash, totalAmount uint64) error {
	if err := l.auth.RequireAdminOrService(caller); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}

		pool := getU64(tx.Bucket(bucketPoolsToken), tokenPoolKey(collection, token))
		if totalAmount > pool {
			return fmt.Errorf("%w: pool %d, committed %d", ErrNotEnoughTokensToDistribute, pool, totalAmount)
		}

		dists := tx.Bucket(bucketDistToken)
		key := tokenPoolKey(collection, token)
		next := Distribution{
			Root:           root,
			TotalCommitted: totalAmount,
			Generation:     1,
			PublishedAt:    l.now().Unix(),
		}
		if data := dists.Get(key); data != nil {
			var prev Distribution
			if err := decodeGob(data, &prev); err != nil {
				return fmt.Errorf("ledger: decode distribution: %w", err)
			}
			next.Generation = prev.Generation + 1
		}
		return putGob(dists, key, next)
	})
}

// ClaimRoyaltiesMerkle pays a native-value distribution leaf. Anyone may
// submit the claim; the proof, not the caller, authorizes it, and the funds
// always go to the recipient in the leaf.
func (l *Ledger) ClaimRoyaltiesMerkle(ctx context.Context, collection, recipient types.Address, amount uint64, proof []chainhash.Hash) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}

		data := tx.Bucket(bucketDistNative).Get(collection[:])
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNoActiveMerkleRoot, collection)
		}
		var dist Distribution
		if err := decodeGob(data, &dist); err != nil {
			return fmt.Errorf("ledger: decode distribution: %w", err)
		}

		leaf := merkle.LeafNative(recipient, amount)
		if !merkle.VerifyProof(leaf, proof, dist.Root) {
			return ErrInvalidProof
		}

		claimed := tx.Bucket(bucketClaimedLeaves)
		leafKey := claimedLeafKeyNative(collection, dist.Generation, leaf)
		if claimed.Get(leafKey) != nil {
			return ErrAlreadyClaimed
		}

		pools := tx.Bucket(bucketPoolsNative)
		pool := getU64(pools, collection[:])
		if amount > pool {
			// A pull-claim may have drained the pool below the committed
			// distribution since the root was published.
			return fmt.Errorf("%w: pool %d, claim %d", ErrInsufficientBalanceForRoot, pool, amount)
		}

		if err := claimed.Put(leafKey, []byte{1}); err != nil {
			return err
		}
		var err error
		if dist.ClaimedAmount, err = addU64(dist.ClaimedAmount, amount); err != nil {
			return err
		}
		if err := putGob(tx.Bucket(bucketDistNative), collection[:], dist); err != nil {
			return err
		}
		if err := putU64(pools, collection[:], pool-amount); err != nil {
			return err
		}
		if err := bumpU64(tx.Bucket(bucketTotals), keyTotalClaimed, amount); err != nil {
			return err
		}

		return l.treasury.TransferNative(ctx, recipient, amount)
	})
}

// ClaimTokenRoyaltiesMerkle pays a fungible-token distribution leaf against
// the collection's per-token root and pool.
func (l *Ledger) ClaimTokenRoyaltiesMerkle(ctx context.Context, collection, recipient, token types.Address, amount uint64, proof []chainhash.Hash) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := requireConfig(tx, collection); err != nil {
			return err
		}

		distKey := tokenPoolKey(collection, token)
		data := tx.Bucket(bucketDistToken).Get(distKey)
		if data == nil {
			return fmt.Errorf("%w: %s token %s", ErrNoActiveMerkleRoot, collection, token)
		}
		var dist Distribution
		if err := decodeGob(data, &dist); err != nil {
			return fmt.Errorf("ledger: decode distribution: %w", err)
		}

		leaf := merkle.LeafToken(recipient, token, amount)
		if !merkle.VerifyProof(leaf, proof, dist.Root) {
			return ErrInvalidProof
		}

		claimed := tx.Bucket(bucketClaimedLeaves)
		leafKey := claimedLeafKeyToken(collection, token, dist.Generation, leaf)
		if claimed.Get(leafKey) != nil {
			return ErrAlreadyClaimed
		}

		pools := tx.Bucket(bucketPoolsToken)
		pool := getU64(pools, distKey)
		if amount > pool {
			return fmt.Errorf("%w: pool %d, claim %d", ErrNotEnoughTokensToDistribute, pool, amount)
		}

		if err := claimed.Put(leafKey, []byte{1}); err != nil {
			return err
		}
		var err error
		if dist.ClaimedAmount, err = addU64(dist.ClaimedAmount, amount); err != nil {
			return err
		}
		if err := putGob(tx.Bucket(bucketDistToken), distKey, dist); err != nil {
			return err
		}
		if err := putU64(pools, distKey, pool-amount); err != nil {
			return err
		}

		return l.treasury.TransferToken(ctx, token, recipient, amount)
	})
}
