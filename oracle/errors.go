package oracle

import "errors"

var (
	// ErrUpdateTooFrequent indicates the minimum block interval since the last update has not elapsed.
	ErrUpdateTooFrequent = errors.New("oracle: update too frequent")
)
