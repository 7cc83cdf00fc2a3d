package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"go.etcd.io/bbolt"

	"github.com/openroyalty/libroyalty-go/types"
)

var (
	bucketConfigs       = []byte("configs")
	bucketAnalytics     = []byte("analytics")
	bucketTokenRecords  = []byte("token_records")
	bucketPoolsNative   = []byte("pools_native")
	bucketPoolsToken    = []byte("pools_token")
	bucketClaimable     = []byte("claimable")
	bucketDistNative    = []byte("dist_native")
	bucketDistToken     = []byte("dist_token")
	bucketClaimedLeaves = []byte("claimed_leaves")
	bucketTotals        = []byte("totals")
)

var allBuckets = [][]byte{
	bucketConfigs, bucketAnalytics, bucketTokenRecords,
	bucketPoolsNative, bucketPoolsToken, bucketClaimable,
	bucketDistNative, bucketDistToken, bucketClaimedLeaves, bucketTotals,
}

var (
	keyTotalAccrued = []byte("total_accrued")
	keyTotalClaimed = []byte("total_claimed")
)

// Claimed-leaf keys carry a currency marker between the collection and the
// epoch so native and token namespaces cannot collide.
const (
	currencyNative byte = 0x00
	currencyToken  byte = 0x01
)

func be8(v uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, v)
	return k
}

func tokenRecordKey(collection types.Address, tokenID uint64) []byte {
	k := make([]byte, 0, types.AddressSize+8)
	k = append(k, collection[:]...)
	return append(k, be8(tokenID)...)
}

func tokenPoolKey(collection, token types.Address) []byte {
	k := make([]byte, 0, 2*types.AddressSize)
	k = append(k, collection[:]...)
	return append(k, token[:]...)
}

func claimableKey(collection, recipient types.Address) []byte {
	k := make([]byte, 0, 2*types.AddressSize)
	k = append(k, collection[:]...)
	return append(k, recipient[:]...)
}

func claimedLeafKeyNative(collection types.Address, generation uint64, leaf chainhash.Hash) []byte {
	k := make([]byte, 0, types.AddressSize+1+8+chainhash.HashSize)
	k = append(k, collection[:]...)
	k = append(k, currencyNative)
	k = append(k, be8(generation)...)
	return append(k, leaf[:]...)
}

func claimedLeafKeyToken(collection, token types.Address, generation uint64, leaf chainhash.Hash) []byte {
	k := make([]byte, 0, 2*types.AddressSize+1+8+chainhash.HashSize)
	k = append(k, collection[:]...)
	k = append(k, currencyToken)
	k = append(k, token[:]...)
	k = append(k, be8(generation)...)
	return append(k, leaf[:]...)
}

// getU64 reads a big-endian uint64 value; a missing key reads as zero.
func getU64(b *bbolt.Bucket, key []byte) uint64 {
	v := b.Get(key)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

func putU64(b *bbolt.Bucket, key []byte, v uint64) error {
	return b.Put(key, be8(v))
}

// addU64 is checked addition for balance and total accumulators.
func addU64(cur, delta uint64) (uint64, error) {
	sum := cur + delta
	if sum < cur {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

// bumpU64 adds delta to the value stored under key, checked.
func bumpU64(b *bbolt.Bucket, key []byte, delta uint64) error {
	sum, err := addU64(getU64(b, key), delta)
	if err != nil {
		return err
	}
	return putU64(b, key, sum)
}

// encodeGob serializes a record using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a record.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// putGob gob-encodes v under key.
func putGob(b *bbolt.Bucket, key []byte, v interface{}) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("ledger: encode record: %w", err)
	}
	return b.Put(key, data)
}

// requireConfig loads the collection's registry entry or reports
// ErrCollectionNotRegistered.
func requireConfig(tx *bbolt.Tx, collection types.Address) (CollectionConfig, error) {
	var cfg CollectionConfig
	data := tx.Bucket(bucketConfigs).Get(collection[:])
	if data == nil {
		return cfg, fmt.Errorf("%w: %s", ErrCollectionNotRegistered, collection)
	}
	if err := decodeGob(data, &cfg); err != nil {
		return cfg, fmt.Errorf("ledger: decode config: %w", err)
	}
	return cfg, nil
}

// loadAnalytics loads the collection's analytics record, which registration
// always seeds alongside the config.
func loadAnalytics(tx *bbolt.Tx, collection types.Address) (Analytics, error) {
	var a Analytics
	data := tx.Bucket(bucketAnalytics).Get(collection[:])
	if data == nil {
		return a, fmt.Errorf("%w: %s", ErrCollectionNotRegistered, collection)
	}
	if err := decodeGob(data, &a); err != nil {
		return a, fmt.Errorf("ledger: decode analytics: %w", err)
	}
	if a.TokenRoyaltyCollected == nil {
		a.TokenRoyaltyCollected = make(map[types.Address]uint64)
	}
	return a, nil
}

func storeAnalytics(tx *bbolt.Tx, collection types.Address, a Analytics) error {
	return putGob(tx.Bucket(bucketAnalytics), collection[:], a)
}

// loadTokenRecord returns the record for (collection, tokenID), or a zero
// record if none exists yet: records materialize on first write.
func loadTokenRecord(tx *bbolt.Tx, collection types.Address, tokenID uint64) (TokenRecord, error) {
	var rec TokenRecord
	data := tx.Bucket(bucketTokenRecords).Get(tokenRecordKey(collection, tokenID))
	if data == nil {
		return rec, nil
	}
	if err := decodeGob(data, &rec); err != nil {
		return rec, fmt.Errorf("ledger: decode token record: %w", err)
	}
	return rec, nil
}

func storeTokenRecord(tx *bbolt.Tx, collection types.Address, tokenID uint64, rec TokenRecord) error {
	return putGob(tx.Bucket(bucketTokenRecords), tokenRecordKey(collection, tokenID), rec)
}
