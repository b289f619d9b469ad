package tx

import (
	"fmt"
	"sort"
)

// SelectionResult is the outcome of a successful coin selection. It is
// consumed immediately by BuildTokenSend.
type SelectionResult struct {
	// Inputs are the consumed UTXOs in selection order: token-carrying
	// outputs first, then plain currency outputs.
	Inputs []*UTXO

	// TokenID is the token being sent.
	TokenID string

	// Quantities holds the encoded token amounts to emit. Quantities[0]
	// is always the amount sent to the receiver; Quantities[1], when
	// present, is the token change returned to the sender.
	Quantities []uint64

	// SendSatoshi is the satoshi value consumed by the required dust
	// outputs (receiver, plus token change when present).
	SendSatoshi uint64

	// Fee is the computed transaction fee.
	Fee uint64

	// Change is the currency change owed back to the sender. Values
	// below DustLimit are forfeited to the fee by the assembler.
	Change uint64
}

// Validate checks the selection's internal accounting. A failure here is
// a selection bug, never a wallet balance problem.
func (r *SelectionResult) Validate() error {
	if len(r.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", ErrMalformedSelection)
	}
	if len(r.Quantities) == 0 || len(r.Quantities) > 2 {
		return fmt.Errorf("%w: %d quantities", ErrMalformedSelection, len(r.Quantities))
	}

	var tokenIn, quantityOut uint64
	for _, u := range r.Inputs {
		if u.CarriesToken(r.TokenID) {
			tokenIn += u.Token.Amount
		}
	}
	for _, q := range r.Quantities {
		quantityOut += q
	}
	if tokenIn != quantityOut {
		return fmt.Errorf("%w: token in %d != quantities out %d",
			ErrMalformedSelection, tokenIn, quantityOut)
	}

	var valueIn uint64
	for _, u := range r.Inputs {
		valueIn += u.Amount
	}
	credit := int64(valueIn) - int64(InputSize)*int64(len(r.Inputs))
	if credit != int64(r.SendSatoshi+r.Fee+r.Change) {
		return fmt.Errorf("%w: input credit %d != send %d + fee %d + change %d",
			ErrMalformedSelection, credit, r.SendSatoshi, r.Fee, r.Change)
	}

	return nil
}

// Select picks spendable outputs to cover a token send of requested raw
// units, using a two-pass ascending greedy strategy.
//
// The token pass consumes the smallest token-carrying outputs until the
// requested amount is reached; overshoot produces a token-change quantity
// and raises the satoshi requirement by one dust output. The currency
// pass then consumes the smallest plain outputs until the dust outputs
// plus fee are covered. Each consumed input is charged InputSize against
// its contributed value.
//
// The spendable slice is referenced, not copied, and must not be mutated
// concurrently with the call.
func Select(tokenID string, requested uint64, spendable []*UTXO, policy FeePolicy) (*SelectionResult, error) {
	if tokenID == "" {
		return nil, fmt.Errorf("%w: token id", ErrNilParam)
	}
	if requested == 0 {
		return nil, fmt.Errorf("%w: requested amount is zero", ErrInvalidQuantities)
	}

	var tokenCandidates, plainCandidates []*UTXO
	for _, u := range spendable {
		switch {
		case u.CarriesToken(tokenID):
			tokenCandidates = append(tokenCandidates, u)
		case u.Token == nil:
			plainCandidates = append(plainCandidates, u)
		}
		// Outputs carrying other tokens are never spent here: consuming
		// them in a plain-currency role would burn their token balance.
	}

	// Token pass: smallest annotated amounts first.
	sort.SliceStable(tokenCandidates, func(i, j int) bool {
		return tokenCandidates[i].Token.Amount < tokenCandidates[j].Token.Amount
	})

	var (
		selected   []*UTXO
		tokenAccum uint64
		credit     int64 // accumulated currency, net of per-input charge
	)
	for _, u := range tokenCandidates {
		if tokenAccum >= requested {
			break
		}
		selected = append(selected, u)
		tokenAccum += u.Token.Amount
		credit += int64(u.Amount) - int64(InputSize)
	}
	if tokenAccum < requested {
		return nil, fmt.Errorf("%w: have %d token units, need %d",
			ErrInsufficientTokenBalance, tokenAccum, requested)
	}

	quantities := []uint64{requested}
	sendSatoshi := DustLimit
	if tokenAccum > requested {
		// Overshoot: a token-change dust output becomes part of the
		// satoshi requirement before the currency pass runs.
		quantities = append(quantities, tokenAccum-requested)
		sendSatoshi += DustLimit
	}

	// Worst case three standard outputs: receiver, token change,
	// currency change.
	fee := policy.TotalFee(3, len(quantities))
	required := int64(sendSatoshi + fee)

	// Currency pass: smallest plain outputs first.
	sort.SliceStable(plainCandidates, func(i, j int) bool {
		return plainCandidates[i].Amount < plainCandidates[j].Amount
	})
	for _, u := range plainCandidates {
		if credit > required {
			break
		}
		selected = append(selected, u)
		credit += int64(u.Amount) - int64(InputSize)
	}

	change := credit - required
	if change < 0 {
		return nil, fmt.Errorf("%w: accumulated %d sat, required %d sat",
			ErrInsufficientCurrencyBalance, credit, required)
	}

	return &SelectionResult{
		Inputs:      selected,
		TokenID:     tokenID,
		Quantities:  quantities,
		SendSatoshi: sendSatoshi,
		Fee:         fee,
		Change:      uint64(change),
	}, nil
}
