package transfer

import (
	"path/filepath"

	"github.com/slporg/libslp-go/config"
	"github.com/slporg/libslp-go/token"
	"github.com/slporg/libslp-go/wallet"
)

// storeFile is the bolt database name inside the data directory.
const storeFile = "wallet.db"

// Stack is a fully assembled wallet built from a configuration: the HD
// wallet on the configured network, the output store under the data
// directory, the keychain binding them, and a Service whose fee policy
// carries the configured propagation slack. Callers feed spendable
// outputs through Store and must Close the stack on shutdown.
type Stack struct {
	Service  *Service
	Wallet   *wallet.Wallet
	Store    *wallet.Store
	Keychain *wallet.Keychain
}

// Close releases the underlying store.
func (s *Stack) Close() error { return s.Store.Close() }

// Open assembles a Stack from cfg and a BIP39 seed. Options are applied
// after the configuration-derived fee policy, so WithFeePolicy still
// overrides it.
func Open(cfg config.Config, seed []byte, registry *token.Registry, opts ...Option) (*Stack, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	w, err := wallet.NewWallet(seed, wallet.NetworkByName(cfg.Network))
	if err != nil {
		return nil, err
	}

	store, err := wallet.OpenStore(filepath.Join(cfg.DataDir, storeFile))
	if err != nil {
		return nil, err
	}

	keychain, err := wallet.NewKeychain(w, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc, err := NewService(registry, keychain, keychain,
		append([]Option{WithFeePolicy(cfg.FeePolicy())}, opts...)...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Stack{Service: svc, Wallet: w, Store: store, Keychain: keychain}, nil
}
