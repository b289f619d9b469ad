package tx

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("tx: required parameter is nil")

	// ErrInsufficientTokenBalance indicates the wallet's token UTXOs cannot
	// cover the requested token amount.
	ErrInsufficientTokenBalance = errors.New("tx: insufficient token balance")

	// ErrInsufficientCurrencyBalance indicates the wallet's UTXOs cannot
	// cover the required outputs plus fee.
	ErrInsufficientCurrencyBalance = errors.New("tx: insufficient currency balance")

	// ErrMalformedSelection indicates a SelectionResult violates its own
	// accounting invariants. This is an internal bug, not a balance problem.
	ErrMalformedSelection = errors.New("tx: malformed selection result")

	// ErrAddressDecode indicates an address string could not be decoded.
	ErrAddressDecode = errors.New("tx: address decode failed")

	// ErrInvalidTokenID indicates the token id is not a 32-byte hex string.
	ErrInvalidTokenID = errors.New("tx: token id must be 32 bytes of hex")

	// ErrInvalidQuantities indicates a send payload has a bad quantity count.
	ErrInvalidQuantities = errors.New("tx: invalid send quantity count")

	// ErrSigningFailed indicates transaction signing failed.
	ErrSigningFailed = errors.New("tx: signing failed")

	// ErrScriptBuild indicates script construction failed.
	ErrScriptBuild = errors.New("tx: script build failed")

	// ErrInvalidOPReturn indicates the OP_RETURN script is malformed.
	ErrInvalidOPReturn = errors.New("tx: invalid OP_RETURN format")

	// ErrNotTokenSend indicates the output is not a token send output.
	ErrNotTokenSend = errors.New("tx: not a token send output")
)
