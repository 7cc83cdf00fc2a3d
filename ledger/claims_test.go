package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroyalty/libroyalty-go/authz"
	"github.com/openroyalty/libroyalty-go/types"
)

func TestAddCollectionRoyalties(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	require.NoError(t, l.AddCollectionRoyalties(collection, 5000))
	require.NoError(t, l.AddCollectionRoyalties(collection, 111))

	pool, err := l.PoolBalance(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(5111), pool)

	analytics, err := l.Analytics(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(5111), analytics.TotalRoyaltyCollectedNative)
}

func TestAddCollectionRoyalties_Errors(t *testing.T) {
	l, _, _ := newTestLedger(t)

	assert.ErrorIs(t, l.AddCollectionRoyalties(collection, 100), ErrCollectionNotRegistered)

	registerDefault(t, l)
	assert.ErrorIs(t, l.AddCollectionRoyalties(collection, 0), ErrZeroAmount)
}

func TestReceiveNative(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	// A registered collection forwarding value lands in its own pool.
	require.NoError(t, l.ReceiveNative(collection, 777))
	pool, err := l.PoolBalance(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), pool)

	// An unknown sender is rejected.
	assert.ErrorIs(t, l.ReceiveNative(user, 777), ErrCollectionNotRegistered)
}

func TestAddCollectionTokenRoyalties(t *testing.T) {
	l, treasury, _ := newTestLedger(t)
	registerDefault(t, l)
	ctx := context.Background()

	require.NoError(t, l.AddCollectionTokenRoyalties(ctx, user, collection, erc20, 4000))

	pool, err := l.TokenPoolBalance(collection, erc20)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), pool)

	analytics, err := l.Analytics(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), analytics.TokenRoyaltyCollected[erc20])

	transfers := treasury.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, MockTransfer{Token: erc20, From: user, Amount: 4000}, transfers[0])
}

func TestAddCollectionTokenRoyalties_PullFailureRollsBack(t *testing.T) {
	l, treasury, _ := newTestLedger(t)
	registerDefault(t, l)

	treasury.PullErr = errors.New("allowance exceeded")
	err := l.AddCollectionTokenRoyalties(context.Background(), user, collection, erc20, 4000)
	require.Error(t, err)

	pool, err := l.TokenPoolBalance(collection, erc20)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pool)
}

func TestUpdateAccruedRoyalties(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	recipients := []types.Address{user, minter}
	amounts := []uint64{300, 700}
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection, recipients, amounts))

	userBal, err := l.ClaimableBalance(collection, user)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), userBal)

	totals, err := l.Totals()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), totals.Accrued)
}

func TestUpdateAccruedRoyalties_Errors(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	err := l.UpdateAccruedRoyalties(user, collection, []types.Address{user}, []uint64{1})
	assert.ErrorIs(t, err, authz.ErrCallerIsNotAdminOrServiceAccount)

	err = l.UpdateAccruedRoyalties(service, collection, []types.Address{user, minter}, []uint64{1})
	assert.ErrorIs(t, err, ErrArrayLengthMismatch)

	other := types.MustParseAddress("0x00000000000000000000000000000000000000f2")
	err = l.UpdateAccruedRoyalties(service, other, []types.Address{user}, []uint64{1})
	assert.ErrorIs(t, err, ErrCollectionNotRegistered)
}

func TestClaimRoyalties(t *testing.T) {
	l, treasury, _ := newTestLedger(t)
	registerDefault(t, l)
	ctx := context.Background()

	require.NoError(t, l.AddCollectionRoyalties(collection, 10_000))
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection, []types.Address{user}, []uint64{6000}))

	// Partial claim.
	require.NoError(t, l.ClaimRoyalties(ctx, user, collection, 2500))

	bal, err := l.ClaimableBalance(collection, user)
	require.NoError(t, err)
	assert.Equal(t, uint64(3500), bal)

	pool, err := l.PoolBalance(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(7500), pool)

	totals, err := l.Totals()
	require.NoError(t, err)
	assert.Equal(t, uint64(2500), totals.Claimed)

	transfers := treasury.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, MockTransfer{To: user, Amount: 2500}, transfers[0])
}

func TestClaimRoyalties_ExceedsBalance(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	require.NoError(t, l.AddCollectionRoyalties(collection, 10_000))
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection, []types.Address{user}, []uint64{100}))

	err := l.ClaimRoyalties(context.Background(), user, collection, 101)
	assert.ErrorIs(t, err, ErrInsufficientUnclaimedRoyalties)
}

func TestClaimRoyalties_UnfundedPool(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	// Accrued but never funded: the pool cannot cover the claim. This is
	// a bookkeeping fault, not a caller error.
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection, []types.Address{user}, []uint64{100}))

	err := l.ClaimRoyalties(context.Background(), user, collection, 100)
	assert.ErrorIs(t, err, ErrPoolBalanceInconsistent)
}

func TestClaimRoyalties_TransferFailureRollsBack(t *testing.T) {
	l, treasury, _ := newTestLedger(t)
	registerDefault(t, l)

	require.NoError(t, l.AddCollectionRoyalties(collection, 10_000))
	require.NoError(t, l.UpdateAccruedRoyalties(service, collection, []types.Address{user}, []uint64{6000}))

	treasury.NativeErr = errors.New("payout channel down")
	err := l.ClaimRoyalties(context.Background(), user, collection, 2500)
	require.Error(t, err)

	// Nothing was marked paid.
	bal, err := l.ClaimableBalance(collection, user)
	require.NoError(t, err)
	assert.Equal(t, uint64(6000), bal)

	pool, err := l.PoolBalance(collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), pool)

	totals, err := l.Totals()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), totals.Claimed)
}

func TestClaimRoyalties_ZeroAmount(t *testing.T) {
	l, _, _ := newTestLedger(t)
	registerDefault(t, l)

	err := l.ClaimRoyalties(context.Background(), user, collection, 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
}
