package oracle

// Gate rate-limits royalty-data recompute triggers for one collection to a
// minimum block gap. Zero MinBlockInterval disables the limit.
type Gate struct {
	LastUpdateBlock  uint64
	MinBlockInterval uint64
}

// Check returns ErrUpdateTooFrequent when fewer than MinBlockInterval blocks
// have elapsed since the last update. A current block behind the recorded
// one is also rejected: the counter is monotonic.
func (g Gate) Check(currentBlock uint64) error {
	if currentBlock < g.LastUpdateBlock {
		return ErrUpdateTooFrequent
	}
	if currentBlock-g.LastUpdateBlock < g.MinBlockInterval {
		return ErrUpdateTooFrequent
	}
	return nil
}

// Mark records a successful update at currentBlock.
func (g *Gate) Mark(currentBlock uint64) {
	g.LastUpdateBlock = currentBlock
}
