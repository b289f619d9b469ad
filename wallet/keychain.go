package wallet

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/slporg/libslp-go/tx"
)

// Keychain binds a Wallet to its Store. It plays two collaborator roles
// for the transfer service: the fresh-address provider for change outputs
// and the spendable-output source for coin selection.
type Keychain struct {
	wallet *Wallet
	store  *Store
}

// NewKeychain creates a Keychain over the given wallet and store.
func NewKeychain(w *Wallet, s *Store) (*Keychain, error) {
	if w == nil {
		return nil, fmt.Errorf("wallet: keychain requires a wallet")
	}
	if s == nil {
		return nil, fmt.Errorf("wallet: keychain requires a store")
	}
	return &Keychain{wallet: w, store: s}, nil
}

// FreshTokenAddress returns a newly derived external-chain address for
// receiving token change. Each call advances the persisted index.
func (k *Keychain) FreshTokenAddress() (*script.Address, error) {
	idx, err := k.store.NextAddressIndex(ExternalChain)
	if err != nil {
		return nil, err
	}
	return k.wallet.Address(ExternalChain, idx)
}

// FreshChangeAddress returns a newly derived internal-chain address for
// currency change. Each call advances the persisted index.
func (k *Keychain) FreshChangeAddress() (*script.Address, error) {
	idx, err := k.store.NextAddressIndex(InternalChain)
	if err != nil {
		return nil, err
	}
	return k.wallet.Address(InternalChain, idx)
}

// SpendableOutputs materializes the stored output set into fully signable
// UTXOs: each record's key is re-derived from its chain and index and the
// locking script rebuilt from the derived public key.
func (k *Keychain) SpendableOutputs() ([]*tx.UTXO, error) {
	stored, err := k.store.UTXOs()
	if err != nil {
		return nil, err
	}

	utxos := make([]*tx.UTXO, 0, len(stored))
	for _, su := range stored {
		kp, err := k.wallet.DeriveKey(su.Chain, su.KeyIndex)
		if err != nil {
			return nil, fmt.Errorf("wallet: utxo %x:%d: %w", su.TxID, su.Vout, err)
		}
		lock, err := k.wallet.LockingScript(su.Chain, su.KeyIndex)
		if err != nil {
			return nil, fmt.Errorf("wallet: utxo %x:%d: %w", su.TxID, su.Vout, err)
		}
		utxos = append(utxos, &tx.UTXO{
			TxID:         su.TxID,
			Vout:         su.Vout,
			Amount:       su.Amount,
			ScriptPubKey: lock,
			Token:        su.Token,
			PrivateKey:   kp.PrivateKey,
		})
	}
	return utxos, nil
}
