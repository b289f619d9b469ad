// Package wallet implements the HD wallet backing the token send engine:
// BIP39 seed handling, BIP44 key derivation for receive and change chains,
// and a bbolt-backed spendable-output store.
//
// Key hierarchy: m/44'/245'/0'/{chain}/{index}, where 245 is the SLP
// coin type, chain 0 holds token receive addresses and chain 1 holds
// currency change addresses.
package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

const (
	// BIP44 path constants.
	PurposeBIP44 = 44
	CoinTypeSLP  = 245
	TokenAccount = 0

	// Chain indices.
	ExternalChain = 0 // Token receive addresses
	InternalChain = 1 // Currency change addresses

	// MaxAddressIndex is the BIP32 non-hardened ceiling.
	MaxAddressIndex = 1<<31 - 1

	// Hardened is the BIP32 hardened derivation offset.
	Hardened = 0x80000000
)

// Wallet derives keys for the token account of an HD wallet.
type Wallet struct {
	accountKey *bip32.ExtendedKey
	network    *NetworkConfig
}

// KeyPair holds a derived public/private key pair.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"public_key"`
	Path       string         `json:"path"` // Human-readable derivation path
}

// NewWallet creates a Wallet from a BIP39 seed. The account-level key
// m/44'/245'/0' is derived once; per-address keys branch off it.
func NewWallet(seed []byte, network *NetworkConfig) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if network == nil {
		network = &MainNet
	}

	var net *chaincfg.Params
	switch network.Name {
	case "mainnet":
		net = &chaincfg.MainNet
	default:
		net = &chaincfg.TestNet
	}

	masterKey, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	accountKey, err := deriveAccount(masterKey)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		accountKey: accountKey,
		network:    network,
	}, nil
}

// Network returns the wallet's network configuration.
func (w *Wallet) Network() *NetworkConfig {
	return w.network
}

// deriveAccount derives m/44'/245'/0' from the master key.
func deriveAccount(masterKey *bip32.ExtendedKey) (*bip32.ExtendedKey, error) {
	purpose, err := masterKey.Child(PurposeBIP44 + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose derivation: %w", ErrDerivationFailed, err)
	}
	coinType, err := purpose.Child(CoinTypeSLP + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type derivation: %w", ErrDerivationFailed, err)
	}
	accountKey, err := coinType.Child(TokenAccount + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: account derivation: %w", ErrDerivationFailed, err)
	}
	return accountKey, nil
}

// DeriveKey derives the key pair at m/44'/245'/0'/chain/index.
func (w *Wallet) DeriveKey(chain, index uint32) (*KeyPair, error) {
	if chain != ExternalChain && chain != InternalChain {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, chain)
	}
	if index > MaxAddressIndex {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	chainKey, err := w.accountKey.Child(chain)
	if err != nil {
		return nil, fmt.Errorf("%w: chain derivation: %w", ErrDerivationFailed, err)
	}
	childKey, err := chainKey.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index derivation: %w", ErrDerivationFailed, err)
	}

	privKey, err := childKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}

	return &KeyPair{
		PrivateKey: privKey,
		PublicKey:  privKey.PubKey(),
		Path:       fmt.Sprintf("m/44'/245'/0'/%d/%d", chain, index),
	}, nil
}

// Address returns the P2PKH address at m/44'/245'/0'/chain/index.
func (w *Wallet) Address(chain, index uint32) (*script.Address, error) {
	kp, err := w.DeriveKey(chain, index)
	if err != nil {
		return nil, err
	}
	addr, err := script.NewAddressFromPublicKey(kp.PublicKey, w.network.Name == "mainnet")
	if err != nil {
		return nil, fmt.Errorf("%w: address from pubkey: %w", ErrDerivationFailed, err)
	}
	return addr, nil
}

// LockingScript returns the P2PKH locking script bytes for the key at
// m/44'/245'/0'/chain/index.
func (w *Wallet) LockingScript(chain, index uint32) ([]byte, error) {
	addr, err := w.Address(chain, index)
	if err != nil {
		return nil, err
	}
	lock, err := p2pkh.Lock(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock script: %w", ErrDerivationFailed, err)
	}
	return []byte(*lock), nil
}
