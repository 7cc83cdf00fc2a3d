package merkle

import (
	"bytes"
	"encoding/binary"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"golang.org/x/crypto/sha3"

	"github.com/openroyalty/libroyalty-go/types"
)

// LeafNative hashes a native-value distribution entry:
// keccak256(recipient || amount) with the amount big-endian encoded.
func LeafNative(recipient types.Address, amount uint64) chainhash.Hash {
	return keccak(recipient[:], amountBytes(amount))
}

// LeafToken hashes a fungible-token distribution entry:
// keccak256(recipient || token || amount).
func LeafToken(recipient, token types.Address, amount uint64) chainhash.Hash {
	return keccak(recipient[:], token[:], amountBytes(amount))
}

// VerifyProof checks a bottom-up inclusion proof of leaf against root.
// Each step hashes the running value with the next sibling, byte-wise
// smaller child first, so verification agrees with proof generation
// regardless of which side the sibling was recorded on.
func VerifyProof(leaf chainhash.Hash, proof []chainhash.Hash, root chainhash.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed.IsEqual(&root)
}

// hashPair hashes two child nodes in deterministic byte order.
func hashPair(a, b chainhash.Hash) chainhash.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return keccak(a[:], b[:])
}

// keccak computes the keccak-256 digest of the concatenated parts.
func keccak(parts ...[]byte) chainhash.Hash {
	var h chainhash.Hash
	d := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		d.Write(p)
	}
	copy(h[:], d.Sum(nil))
	return h
}

func amountBytes(amount uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, amount)
	return b
}
