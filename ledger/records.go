package ledger

import (
	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/openroyalty/libroyalty-go/share"
	"github.com/openroyalty/libroyalty-go/types"
)

// CollectionConfig is the static per-collection royalty configuration,
// written once at registration and mutated only through the creator-address
// update path.
type CollectionConfig struct {
	// FeeNumerator is the royalty fee in basis points of the sale price.
	FeeNumerator uint16
	// MinterShareBps and CreatorShareBps split the royalty; they must sum
	// to 10000. The creator side absorbs integer rounding remainders.
	MinterShareBps  uint16
	CreatorShareBps uint16
	// Creator receives the creator share of every attributed sale.
	Creator types.Address
}

// Validate checks the fee and share split.
func (c CollectionConfig) Validate() error {
	if c.FeeNumerator > share.BpsDenominator {
		return ErrInvalidConfiguration
	}
	if uint32(c.MinterShareBps)+uint32(c.CreatorShareBps) != share.BpsDenominator {
		return ErrInvalidConfiguration
	}
	if c.Creator.IsZero() {
		return ErrCreatorCannotBeZeroAddress
	}
	return nil
}

// Analytics is the per-collection running state: attributed volume, oracle
// gate bookkeeping, and royalty funds received per currency.
type Analytics struct {
	TotalVolume                 uint64
	LastOracleUpdateBlock       uint64
	OracleMinBlockInterval      uint64
	TotalRoyaltyCollectedNative uint64
	// TokenRoyaltyCollected maps fungible-token address to funds received
	// in that token.
	TokenRoyaltyCollected map[types.Address]uint64
}

// TokenRecord tracks royalty history for one token of a collection. Minter
// is immutable once set; CurrentHolder mirrors external ownership and is
// only as fresh as the last sync call.
type TokenRecord struct {
	Minter               types.Address
	CurrentHolder        types.Address
	SaleCount            uint64
	CumulativeVolume     uint64
	MinterRoyaltyEarned  uint64
	CreatorRoyaltyEarned uint64
}

// Distribution is the active Merkle claim epoch for one collection and
// currency. Generation namespaces the claimed-leaf set so replacing the
// root is O(1) and old proofs cannot replay.
type Distribution struct {
	Root           chainhash.Hash
	TotalCommitted uint64
	// ClaimedAmount is the value already paid out under this root.
	ClaimedAmount uint64
	Generation    uint64
	PublishedAt   int64
}

// Unclaimed returns the value still committed to this root.
func (d Distribution) Unclaimed() uint64 {
	if d.ClaimedAmount >= d.TotalCommitted {
		return 0
	}
	return d.TotalCommitted - d.ClaimedAmount
}

// Attribution is the record emitted for each sale processed by
// BatchUpdateRoyaltyData.
type Attribution struct {
	Collection   types.Address
	TokenID      uint64
	Minter       types.Address
	Creator      types.Address
	SalePrice    uint64
	Royalty      uint64
	MinterShare  uint64
	CreatorShare uint64
	TxHash       chainhash.Hash
}

// Totals is the global native-value accounting surface.
type Totals struct {
	Accrued   uint64
	Claimed   uint64
	Unclaimed uint64
}
