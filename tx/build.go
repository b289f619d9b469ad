package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// AddressProvider supplies freshly derived sender-owned addresses for
// change outputs. Every call must return a new, never-reused address;
// the provider owns the derivation-index state.
type AddressProvider interface {
	// FreshChangeAddress returns a new address for currency change.
	FreshChangeAddress() (*script.Address, error)

	// FreshTokenAddress returns a new address for token change.
	FreshTokenAddress() (*script.Address, error)
}

// BuildTokenSend assembles an unsigned token send transaction from a
// selection result.
//
// Output layout:
//
//	0: OP_RETURN send payload (zero value)
//	1: P2PKH -> receiver (dust)
//	2: P2PKH -> token change (dust, only when two quantities)
//	3: P2PKH -> currency change (only when change >= DustLimit)
//
// Inputs are attached in selection order. Change below DustLimit is
// forfeited to the fee rather than emitted as an unspendable output.
func BuildTokenSend(sel *SelectionResult, toAddress string, addrs AddressProvider) (*transaction.Transaction, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selection result", ErrNilParam)
	}
	if addrs == nil {
		return nil, fmt.Errorf("%w: address provider", ErrNilParam)
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	draft := transaction.NewTransaction()

	// Metadata output.
	sendScript, err := BuildSendScript(sel.TokenID, sel.Quantities)
	if err != nil {
		return nil, err
	}
	draft.AddOutput(&transaction.TransactionOutput{
		Satoshis:      0,
		LockingScript: sendScript,
	})

	// Receiver output.
	receiver, err := script.NewAddressFromString(toAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrAddressDecode, toAddress, err)
	}
	receiverScript, err := p2pkh.Lock(receiver)
	if err != nil {
		return nil, fmt.Errorf("%w: receiver lock script: %w", ErrScriptBuild, err)
	}
	draft.AddOutput(&transaction.TransactionOutput{
		Satoshis:      DustLimit,
		LockingScript: receiverScript,
	})

	// Token change output.
	if len(sel.Quantities) == 2 {
		tokenAddr, err := addrs.FreshTokenAddress()
		if err != nil {
			return nil, fmt.Errorf("tx: fresh token address: %w", err)
		}
		tokenScript, err := p2pkh.Lock(tokenAddr)
		if err != nil {
			return nil, fmt.Errorf("%w: token change lock script: %w", ErrScriptBuild, err)
		}
		draft.AddOutput(&transaction.TransactionOutput{
			Satoshis:      DustLimit,
			LockingScript: tokenScript,
		})
	}

	// Currency change output.
	if sel.Change >= DustLimit {
		changeAddr, err := addrs.FreshChangeAddress()
		if err != nil {
			return nil, fmt.Errorf("tx: fresh change address: %w", err)
		}
		changeScript, err := p2pkh.Lock(changeAddr)
		if err != nil {
			return nil, fmt.Errorf("%w: change lock script: %w", ErrScriptBuild, err)
		}
		draft.AddOutput(&transaction.TransactionOutput{
			Satoshis:      sel.Change,
			LockingScript: changeScript,
		})
	}

	// Inputs, in selection order.
	for i, u := range sel.Inputs {
		prevTxID, err := chainhash.NewHash(u.TxID)
		if err != nil {
			return nil, fmt.Errorf("%w: input[%d] txid: %w", ErrScriptBuild, i, err)
		}
		draft.AddInput(&transaction.TransactionInput{
			SourceTXID:       prevTxID,
			SourceTxOutIndex: u.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		})
	}

	return draft, nil
}
