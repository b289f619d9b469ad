package token

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// maxRawAmount is the largest on-chain token quantity: 2^64 - 1.
var maxRawAmount = decimal.NewFromUint64(math.MaxUint64)

// ToRawAmount converts a decimal token amount into its raw on-chain
// representation by shifting it left by the token's decimals.
//
// Fails with ErrPrecisionExceeded if the amount carries more fractional
// digits than the token supports (no rounding ever happens), and with
// ErrAmountOverflow if the scaled value does not fit in 64 bits. Zero is
// a valid amount at this layer so decoded values always re-encode; the
// selector is where a zero-quantity send gets rejected.
func ToRawAmount(amount decimal.Decimal, d Descriptor) (uint64, error) {
	if amount.Sign() < 0 {
		return 0, fmt.Errorf("%w: got %s", ErrNegativeAmount, amount)
	}

	scaled := amount.Shift(int32(d.Decimals))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d fractional digits",
			ErrPrecisionExceeded, amount, d.Decimals)
	}
	if scaled.Cmp(maxRawAmount) > 0 {
		return 0, fmt.Errorf("%w: %s scales to %s, max is %s",
			ErrAmountOverflow, amount, scaled, maxRawAmount)
	}

	return scaled.BigInt().Uint64(), nil
}

// FromRawAmount converts a raw on-chain quantity back into a decimal
// amount. ToRawAmount(FromRawAmount(r, d), d) == r for every r.
func FromRawAmount(raw uint64, d Descriptor) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(d.Decimals))
}
