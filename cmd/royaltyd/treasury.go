package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/openroyalty/libroyalty-go/types"
)

// logTreasury emits payout and pull instructions to the log stream for an
// out-of-band settlement process to execute. The ledger state is the source
// of truth; settlement replays the instruction log.
type logTreasury struct {
	log *zap.Logger
}

func (t *logTreasury) TransferNative(_ context.Context, to types.Address, amount uint64) error {
	t.log.Info("transfer native",
		zap.String("to", to.String()),
		zap.Uint64("amount", amount))
	return nil
}

func (t *logTreasury) PullToken(_ context.Context, token, from types.Address, amount uint64) error {
	t.log.Info("pull token",
		zap.String("token", token.String()),
		zap.String("from", from.String()),
		zap.Uint64("amount", amount))
	return nil
}

func (t *logTreasury) TransferToken(_ context.Context, token, to types.Address, amount uint64) error {
	t.log.Info("transfer token",
		zap.String("token", token.String()),
		zap.String("to", to.String()),
		zap.Uint64("amount", amount))
	return nil
}
