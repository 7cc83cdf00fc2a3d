package ledger

import (
	"context"
	"sync"

	"github.com/openroyalty/libroyalty-go/types"
)

// MockTransfer records one value movement through a MockTreasury.
type MockTransfer struct {
	Token  types.Address // zero for native
	From   types.Address // zero for outbound payouts
	To     types.Address // zero for inbound pulls
	Amount uint64
}

// MockTreasury is an in-memory Treasury for tests. Set the error fields to
// simulate transfer failures.
type MockTreasury struct {
	mu        sync.Mutex
	transfers []MockTransfer

	NativeErr error
	PullErr   error
	TokenErr  error
}

// Compile-time interface check.
var _ Treasury = (*MockTreasury)(nil)

// TransferNative records a native payout.
func (m *MockTreasury) TransferNative(_ context.Context, to types.Address, amount uint64) error {
	if m.NativeErr != nil {
		return m.NativeErr
	}
	m.record(MockTransfer{To: to, Amount: amount})
	return nil
}

// PullToken records an inbound token pull.
func (m *MockTreasury) PullToken(_ context.Context, token, from types.Address, amount uint64) error {
	if m.PullErr != nil {
		return m.PullErr
	}
	m.record(MockTransfer{Token: token, From: from, Amount: amount})
	return nil
}

// TransferToken records a token payout.
func (m *MockTreasury) TransferToken(_ context.Context, token, to types.Address, amount uint64) error {
	if m.TokenErr != nil {
		return m.TokenErr
	}
	m.record(MockTransfer{Token: token, To: to, Amount: amount})
	return nil
}

func (m *MockTreasury) record(t MockTransfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers = append(m.transfers, t)
}

// Transfers returns a copy of all recorded movements.
func (m *MockTreasury) Transfers() []MockTransfer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockTransfer, len(m.transfers))
	copy(out, m.transfers)
	return out
}

// MockBlocks is a manually advanced BlockSource for tests.
type MockBlocks struct {
	Height uint64
}

// Compile-time interface check.
var _ BlockSource = (*MockBlocks)(nil)

// CurrentBlock returns the manually set height.
func (b *MockBlocks) CurrentBlock() uint64 { return b.Height }
