package merkle

import "errors"

var (
	// ErrNoLeaves indicates an attempt to build a tree with no leaves.
	ErrNoLeaves = errors.New("merkle: no leaves")

	// ErrLeafIndexOutOfRange indicates a proof request for a leaf outside the tree.
	ErrLeafIndexOutOfRange = errors.New("merkle: leaf index out of range")
)
