package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroyalty/libroyalty-go/authz"
	"github.com/openroyalty/libroyalty-go/types"
)

// --- Shared fixtures ---

var (
	admin      = types.MustParseAddress("0x00000000000000000000000000000000000000a1")
	service    = types.MustParseAddress("0x00000000000000000000000000000000000000b1")
	user       = types.MustParseAddress("0x00000000000000000000000000000000000000c1")
	creator    = types.MustParseAddress("0x00000000000000000000000000000000000000d1")
	minter     = types.MustParseAddress("0x00000000000000000000000000000000000000e1")
	collection = types.MustParseAddress("0x00000000000000000000000000000000000000f1")
	erc20      = types.MustParseAddress("0x0000000000000000000000000000000000000099")
)

const ether = 1_000_000_000_000_000_000

func newTestLedger(t *testing.T) (*Ledger, *MockTreasury, *MockBlocks) {
	t.Helper()

	auth, err := authz.New(admin)
	require.NoError(t, err)
	require.NoError(t, auth.GrantService(admin, service))

	treasury := &MockTreasury{}
	blocks := &MockBlocks{Height: 100}

	l, err := Open(filepath.Join(t.TempDir(), "royalty.db"), auth, treasury, blocks,
		WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	return l, treasury, blocks
}

func defaultConfig() CollectionConfig {
	return CollectionConfig{
		FeeNumerator:    750,
		MinterShareBps:  2000,
		CreatorShareBps: 8000,
		Creator:         creator,
	}
}

func registerDefault(t *testing.T, l *Ledger) {
	t.Helper()
	require.NoError(t, l.RegisterCollection(admin, collection, defaultConfig()))
}

// --- Registry ---

func TestRegisterCollection(t *testing.T) {
	l, _, blocks := newTestLedger(t)
	blocks.Height = 42

	require.NoError(t, l.RegisterCollection(admin, collection, defaultConfig()))

	cfg, err := l.Config(collection)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	// Registration seeds the oracle anchor at the current block.
	analytics, err := l.Analytics(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), analytics.LastOracleUpdateBlock)
}

func TestRegisterCollection_NotAdmin(t *testing.T) {
	l, _, _ := newTestLedger(t)

	err := l.RegisterCollection(user, collection, defaultConfig())
	assert.ErrorIs(t, err, authz.ErrCallerIsNotAdmin)

	err = l.RegisterCollection(service, collection, defaultConfig())
	assert.ErrorIs(t, err, authz.ErrCallerIsNotAdmin)
}

func TestRegisterCollection_Twice(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	second := defaultConfig()
	second.FeeNumerator = 100
	err := l.RegisterCollection(admin, collection, second)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// The original configuration is untouched.
	cfg, err := l.Config(collection)
	require.NoError(t, err)
	assert.Equal(t, uint16(750), cfg.FeeNumerator)
}

func TestRegisterCollection_InvalidConfiguration(t *testing.T) {
	l, _, _ := newTestLedger(t)

	tests := []struct {
		name    string
		mutate  func(*CollectionConfig)
		wantErr error
	}{
		{"fee above denominator", func(c *CollectionConfig) { c.FeeNumerator = 10001 }, ErrInvalidConfiguration},
		{"shares above 10000", func(c *CollectionConfig) { c.MinterShareBps = 3000 }, ErrInvalidConfiguration},
		{"shares below 10000", func(c *CollectionConfig) { c.CreatorShareBps = 7000 }, ErrInvalidConfiguration},
		{"zero creator", func(c *CollectionConfig) { c.Creator = types.ZeroAddress }, ErrCreatorCannotBeZeroAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, l.RegisterCollection(admin, collection, cfg), tt.wantErr)
		})
	}

	// Nothing was registered.
	_, err := l.Config(collection)
	assert.ErrorIs(t, err, ErrCollectionNotRegistered)
}

func TestConfig_Unregistered(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.Config(collection)
	assert.ErrorIs(t, err, ErrCollectionNotRegistered)
}

func TestUpdateCreatorAddress(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	newCreator := types.MustParseAddress("0x00000000000000000000000000000000000000d2")

	// The registered creator may rotate itself.
	require.NoError(t, l.UpdateCreatorAddress(creator, collection, newCreator))
	cfg, err := l.Config(collection)
	require.NoError(t, err)
	assert.Equal(t, newCreator, cfg.Creator)

	// The old creator lost the right; an admin still has it.
	assert.ErrorIs(t, l.UpdateCreatorAddress(creator, collection, creator), ErrNotCollectionCreatorOrAdmin)
	require.NoError(t, l.UpdateCreatorAddress(admin, collection, creator))
}

func TestUpdateCreatorAddress_Errors(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	assert.ErrorIs(t, l.UpdateCreatorAddress(admin, collection, types.ZeroAddress), ErrCreatorCannotBeZeroAddress)
	assert.ErrorIs(t, l.UpdateCreatorAddress(user, collection, user), ErrNotCollectionCreatorOrAdmin)

	other := types.MustParseAddress("0x00000000000000000000000000000000000000f2")
	assert.ErrorIs(t, l.UpdateCreatorAddress(admin, other, creator), ErrCollectionNotRegistered)
}

// --- Conservation across a mixed operation sequence ---

func TestConservation(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)
	ctx := context.Background()

	// Attribute two sales: royalty = 7.5% of 2 ether = 0.15 ether.
	_, err := l.BatchUpdateRoyaltyData(service, collection,
		[]uint64{1, 2},
		[]types.Address{minter, minter},
		[]uint64{ether, ether},
		testTxHashes(2))
	require.NoError(t, err)

	// Fund the pool so claims can be paid.
	require.NoError(t, l.AddCollectionRoyalties(collection, ether/4))

	// Manual accrual on top.
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection,
		[]types.Address{user}, []uint64{1000}))

	totals, err := l.Totals()
	require.NoError(t, err)
	wantAccrued := uint64(150_000_000_000_000_000 + 1000)
	assert.Equal(t, wantAccrued, totals.Accrued)
	assert.Equal(t, uint64(0), totals.Claimed)
	assert.Equal(t, wantAccrued, totals.Unclaimed)

	// The minter pull-claims its 20% share of the royalty.
	minterShare := uint64(30_000_000_000_000_000)
	require.NoError(t, l.ClaimRoyalties(ctx, minter, collection, minterShare))

	totals, err = l.Totals()
	require.NoError(t, err)
	assert.Equal(t, wantAccrued, totals.Accrued)
	assert.Equal(t, minterShare, totals.Claimed)
	assert.Equal(t, wantAccrued-minterShare, totals.Unclaimed)

	pool, err := l.PoolBalance(collection)
	require.NoError(t, err)
	assert.Equal(t, ether/4-minterShare, pool)
}
