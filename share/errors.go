package share

import "errors"

var (
	// ErrFeeExceedsDenominator indicates a fee numerator above 10000 basis points.
	ErrFeeExceedsDenominator = errors.New("share: fee numerator exceeds basis-point denominator")

	// ErrSharesDoNotSumToDenominator indicates minter and creator shares do not sum to 10000.
	ErrSharesDoNotSumToDenominator = errors.New("share: minter and creator shares must sum to 10000")
)
