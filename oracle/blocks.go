package oracle

import "time"

// TimeBlocks derives a monotonically increasing block counter from wall
// time for deployments with no chain connection: block N covers the Nth
// BlockTime interval after Genesis.
type TimeBlocks struct {
	Genesis   time.Time
	BlockTime time.Duration
}

// CurrentBlock returns the block number covering the current instant.
func (b TimeBlocks) CurrentBlock() uint64 {
	elapsed := time.Since(b.Genesis)
	if elapsed < 0 || b.BlockTime <= 0 {
		return 0
	}
	return uint64(elapsed / b.BlockTime)
}
