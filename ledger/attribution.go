package ledger

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/share"
	"github.com/openroyalty/libroyalty-go/types"
)

// BatchUpdateRoyaltyData ingests a batch of reported sales for one
// collection: per token it fixes the minter on first sight, accumulates the
// sale analytics, and credits the minter's and creator's claimable balances
// with their royalty shares. The creator share absorbs integer rounding
// remainders so no dust is lost. The batch commits as a unit; a failure at
// any index leaves all state untouched.
//
// Caller must hold the admin or service-account role. All slices must have
// equal length.
func (l *Ledger) BatchUpdateRoyaltyData(
	caller, collection types.Address,
	tokenIDs []uint64,
	minters []types.Address,
	salePrices []uint64,
	txHashes []chainhash.Hash,
) ([]Attribution, error) {
	if err := l.auth.RequireAdminOrService(caller); err != nil {
		return nil, err
	}
	n := len(tokenIDs)
	if len(minters) != n || len(salePrices) != n || len(txHashes) != n {
		return nil, ErrArrayLengthMismatch
	}

	records := make([]Attribution, 0, n)
	err := l.db.Update(func(tx *bbolt.Tx) error {
		cfg, err := requireConfig(tx, collection)
		if err != nil {
			return err
		}
		analytics, err := loadAnalytics(tx, collection)
		if err != nil {
			return err
		}

		claimable := tx.Bucket(bucketClaimable)
		totals := tx.Bucket(bucketTotals)

		for i := 0; i < n; i++ {
			royalty, err := share.Royalty(salePrices[i], cfg.FeeNumerator)
			if err != nil {
				return fmt.Errorf("sale %d: %w", i, err)
			}
			minterShare, creatorShare, err := share.Split(royalty, cfg.MinterShareBps, cfg.CreatorShareBps)
			if err != nil {
				return fmt.Errorf("sale %d: %w", i, err)
			}

			rec, err := loadTokenRecord(tx, collection, tokenIDs[i])
			if err != nil {
				return err
			}
			if rec.Minter.IsZero() {
				rec.Minter = minters[i]
			}
			rec.SaleCount++
			if rec.CumulativeVolume, err = addU64(rec.CumulativeVolume, salePrices[i]); err != nil {
				return fmt.Errorf("sale %d: cumulative volume: %w", i, err)
			}
			if rec.MinterRoyaltyEarned, err = addU64(rec.MinterRoyaltyEarned, minterShare); err != nil {
				return fmt.Errorf("sale %d: minter earned: %w", i, err)
			}
			if rec.CreatorRoyaltyEarned, err = addU64(rec.CreatorRoyaltyEarned, creatorShare); err != nil {
				return fmt.Errorf("sale %d: creator earned: %w", i, err)
			}
			if err := storeTokenRecord(tx, collection, tokenIDs[i], rec); err != nil {
				return err
			}

			if analytics.TotalVolume, err = addU64(analytics.TotalVolume, salePrices[i]); err != nil {
				return fmt.Errorf("sale %d: total volume: %w", i, err)
			}

			if err := bumpU64(claimable, claimableKey(collection, rec.Minter), minterShare); err != nil {
				return fmt.Errorf("sale %d: minter balance: %w", i, err)
			}
			if err := bumpU64(claimable, claimableKey(collection, cfg.Creator), creatorShare); err != nil {
				return fmt.Errorf("sale %d: creator balance: %w", i, err)
			}
			if err := bumpU64(totals, keyTotalAccrued, royalty); err != nil {
				return fmt.Errorf("sale %d: total accrued: %w", i, err)
			}

			records = append(records, Attribution{
				Collection:   collection,
				TokenID:      tokenIDs[i],
				Minter:       rec.Minter,
				Creator:      cfg.Creator,
				SalePrice:    salePrices[i],
				Royalty:      royalty,
				MinterShare:  minterShare,
				CreatorShare: creatorShare,
				TxHash:       txHashes[i],
			})
		}

		return storeAnalytics(tx, collection, analytics)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
