package share

import "math/bits"

// BpsDenominator is the basis-point denominator: shares and fees are
// expressed in integer units of 1/10000.
const BpsDenominator = 10000

// Royalty computes the royalty owed on a sale: salePrice * feeNumerator / 10000.
// The multiply runs at 128-bit width so large sale prices cannot overflow.
func Royalty(salePrice uint64, feeNumerator uint16) (uint64, error) {
	if feeNumerator > BpsDenominator {
		return 0, ErrFeeExceedsDenominator
	}
	return mulBps(salePrice, feeNumerator), nil
}

// Split divides a royalty between the minter and the creator. The minter
// portion is floor-divided; the creator absorbs the rounding remainder so
// minter + creator always equals the royalty exactly.
func Split(royalty uint64, minterShareBps, creatorShareBps uint16) (minter, creator uint64, err error) {
	if uint32(minterShareBps)+uint32(creatorShareBps) != BpsDenominator {
		return 0, 0, ErrSharesDoNotSumToDenominator
	}
	minter = mulBps(royalty, minterShareBps)
	creator = royalty - minter
	return minter, creator, nil
}

// mulBps computes amount * bps / 10000 without intermediate overflow.
// bps <= 10000 keeps the 128-bit product's high word below the divisor,
// so the division cannot fault.
func mulBps(amount uint64, bps uint16) uint64 {
	hi, lo := bits.Mul64(amount, uint64(bps))
	quo, _ := bits.Div64(hi, lo, BpsDenominator)
	return quo
}
