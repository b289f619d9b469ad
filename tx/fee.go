package tx

// Transaction size and policy constants, in size units at 1 sat/byte.
const (
	// DustLimit is the minimum P2PKH output value in satoshis.
	DustLimit = uint64(546)

	// InputSize is the footprint of a standard P2PKH input:
	// prevhash(32) + previndex(4) + scriptlen(1) + script(~107) + sequence(4).
	// It is deducted from each selected input's value at selection time.
	InputSize = uint64(148)

	// OutputSize is the footprint of a standard P2PKH output:
	// value(8) + scriptlen(1) + script(~25).
	OutputSize = uint64(34)

	// MetaBaseOverhead is the fixed cost of the token metadata output:
	// value(8) + scriptlen(1) + OP_RETURN(1) + lokad push(5) +
	// token type push(2) + SEND push(5) + token id push(33).
	MetaBaseOverhead = uint64(55)

	// PerQuantitySize is the cost of one 8-byte quantity push.
	PerQuantitySize = uint64(9)

	// DefaultPropagationSlack pads the fee because fee-rate-minimal
	// transactions are empirically under-relayed by peer nodes. It is a
	// safety margin, not a correctness requirement.
	DefaultPropagationSlack = uint64(50)
)

// FeePolicy controls the fee computation for token send transactions.
type FeePolicy struct {
	// PropagationSlack is added on top of the size-derived fee. Callers
	// with a stricter fee policy may lower it below
	// DefaultPropagationSlack at the cost of relay reliability.
	PropagationSlack uint64
}

// DefaultFeePolicy returns the policy used when the caller supplies none.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{PropagationSlack: DefaultPropagationSlack}
}

// PerOutputCost returns the size cost of numOutputs standard outputs.
func PerOutputCost(numOutputs int) uint64 {
	return uint64(numOutputs) * OutputSize
}

// MetadataPayloadSize returns the size of the token metadata output
// carrying numQuantities quantity fields.
func MetadataPayloadSize(numQuantities int) uint64 {
	return MetaBaseOverhead + uint64(numQuantities)*PerQuantitySize
}

// TotalFee returns the fee for a send transaction with numOutputs standard
// outputs and a metadata output carrying numQuantities quantities.
func (p FeePolicy) TotalFee(numOutputs, numQuantities int) uint64 {
	return PerOutputCost(numOutputs) + MetadataPayloadSize(numQuantities) + p.PropagationSlack
}
