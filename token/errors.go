package token

import "errors"

var (
	// ErrPrecisionExceeded indicates the amount has more fractional digits
	// than the token's declared decimals.
	ErrPrecisionExceeded = errors.New("token: amount precision exceeds token decimals")

	// ErrAmountOverflow indicates the scaled amount does not fit in 64 bits.
	ErrAmountOverflow = errors.New("token: amount exceeds 64-bit ceiling")

	// ErrNegativeAmount indicates the amount is negative.
	ErrNegativeAmount = errors.New("token: amount must not be negative")

	// ErrUnknownToken indicates the token id is not in the registry.
	ErrUnknownToken = errors.New("token: unknown token id")

	// ErrInvalidDescriptor indicates a descriptor failed validation.
	ErrInvalidDescriptor = errors.New("token: invalid descriptor")
)
