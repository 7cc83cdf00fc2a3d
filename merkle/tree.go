package merkle

import "github.com/bsv-blockchain/go-sdk/chainhash"

// Tree is a full sorted-pair Merkle tree over a fixed leaf set. The service
// actor builds one off-chain to publish a distribution root and hand out
// per-recipient proofs.
type Tree struct {
	// levels[0] is the leaf level; the last level holds only the root.
	levels [][]chainhash.Hash
}

// NewTree builds the tree bottom-up. Odd levels are padded by duplicating
// the last node.
func NewTree(leaves []chainhash.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	levels := [][]chainhash.Hash{level}
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels}, nil
}

// Root returns the tree root.
func (t *Tree) Root() chainhash.Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// LeafCount returns the number of original leaves.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// Proof returns the sibling path for the leaf at index, bottom-up.
func (t *Tree) Proof(index int) ([]chainhash.Hash, error) {
	if index < 0 || index >= t.LeafCount() {
		return nil, ErrLeafIndexOutOfRange
	}

	var proof []chainhash.Hash
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling >= len(level) {
			// Odd level: the node was paired with its own duplicate.
			sibling = index
		}
		proof = append(proof, level[sibling])
		index /= 2
	}
	return proof, nil
}
