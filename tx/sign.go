package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// SignedTransaction is a fully signed transaction ready for broadcast by
// an external network layer.
type SignedTransaction struct {
	TxID []byte // transaction hash (32 bytes)
	Raw  []byte // serialized transaction bytes
}

// Hex returns the signed transaction as a hex string.
func (s *SignedTransaction) Hex() string {
	return hex.EncodeToString(s.Raw)
}

// Signer signs a draft transaction offline. This is the only point where
// key material is touched; no network access happens here.
type Signer interface {
	SignOffline(draft *transaction.Transaction, inputs []*UTXO) (*SignedTransaction, error)
}

// OfflineSigner signs every input with the P2PKH key carried on its UTXO.
// The inputs slice must match the draft's inputs by position.
type OfflineSigner struct{}

// SignOffline implements Signer.
func (OfflineSigner) SignOffline(draft *transaction.Transaction, inputs []*UTXO) (*SignedTransaction, error) {
	if draft == nil {
		return nil, fmt.Errorf("%w: draft transaction", ErrNilParam)
	}
	if len(inputs) != len(draft.Inputs) {
		return nil, fmt.Errorf("%w: have %d UTXOs but tx has %d inputs",
			ErrSigningFailed, len(inputs), len(draft.Inputs))
	}

	for i, u := range inputs {
		if u == nil {
			return nil, fmt.Errorf("%w: utxo[%d] is nil", ErrNilParam, i)
		}
		if u.PrivateKey == nil {
			return nil, fmt.Errorf("%w: utxo[%d] has nil PrivateKey", ErrSigningFailed, i)
		}
		if len(u.ScriptPubKey) == 0 {
			return nil, fmt.Errorf("%w: utxo[%d] has empty ScriptPubKey", ErrSigningFailed, i)
		}

		unlocker, err := p2pkh.Unlock(u.PrivateKey, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: unlocker for input %d: %w", ErrSigningFailed, i, err)
		}

		// Attach the source output so the sighash can be computed.
		draft.Inputs[i].SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      u.Amount,
			LockingScript: script.NewFromBytes(u.ScriptPubKey),
		})
		draft.Inputs[i].UnlockingScriptTemplate = unlocker
	}

	if err := draft.Sign(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return &SignedTransaction{
		TxID: draft.TxID().CloneBytes(),
		Raw:  draft.Bytes(),
	}, nil
}
