// Package transfer wires the amount codec, coin selector, assembler, and
// signer into the library's one public operation: building a signed token
// transfer from a decimal amount and a destination address.
package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/slporg/libslp-go/token"
	"github.com/slporg/libslp-go/tx"
)

// UTXOSource enumerates the wallet's spendable outputs. Implementations
// must return a point-in-time snapshot that is not mutated while a
// transfer is being built.
type UTXOSource interface {
	SpendableOutputs() ([]*tx.UTXO, error)
}

// Service builds token transfers. All collaborators are required except
// Signer and Policy, which default to OfflineSigner and DefaultFeePolicy.
type Service struct {
	registry  *token.Registry
	source    UTXOSource
	addresses tx.AddressProvider
	signer    tx.Signer
	policy    tx.FeePolicy
}

// Option customizes a Service.
type Option func(*Service)

// WithSigner replaces the default offline P2PKH signer.
func WithSigner(s tx.Signer) Option {
	return func(svc *Service) { svc.signer = s }
}

// WithFeePolicy replaces the default fee policy.
func WithFeePolicy(p tx.FeePolicy) Option {
	return func(svc *Service) { svc.policy = p }
}

// NewService creates a transfer Service.
func NewService(registry *token.Registry, source UTXOSource, addresses tx.AddressProvider, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: registry", tx.ErrNilParam)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: utxo source", tx.ErrNilParam)
	}
	if addresses == nil {
		return nil, fmt.Errorf("%w: address provider", tx.ErrNilParam)
	}

	svc := &Service{
		registry:  registry,
		source:    source,
		addresses: addresses,
		signer:    tx.OfflineSigner{},
		policy:    tx.DefaultFeePolicy(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// BuildTransfer builds and signs a transaction sending amount of the
// given token to toAddress. The pipeline is synchronous and pure over the
// spendable-output snapshot; on any failure no partial transaction is
// returned.
func (s *Service) BuildTransfer(tokenID string, amount decimal.Decimal, toAddress string) (*tx.SignedTransaction, error) {
	desc, err := s.registry.Descriptor(tokenID)
	if err != nil {
		return nil, err
	}

	raw, err := token.ToRawAmount(amount, desc)
	if err != nil {
		return nil, err
	}

	spendable, err := s.source.SpendableOutputs()
	if err != nil {
		return nil, fmt.Errorf("transfer: spendable outputs: %w", err)
	}

	sel, err := tx.Select(tokenID, raw, spendable, s.policy)
	if err != nil {
		return nil, err
	}

	draft, err := tx.BuildTokenSend(sel, toAddress, s.addresses)
	if err != nil {
		return nil, err
	}

	return s.signer.SignOffline(draft, sel.Inputs)
}

// Result is the outcome of an asynchronous transfer build.
type Result struct {
	Tx  *tx.SignedTransaction
	Err error
}

// BuildTransferAsync runs BuildTransfer on its own goroutine and delivers
// exactly one Result on the returned channel. The channel is buffered, so
// the result is never lost if the caller reads late. There is no
// cancellation: insufficiency is terminal and the caller re-invokes with
// adjusted parameters if needed.
func (s *Service) BuildTransferAsync(tokenID string, amount decimal.Decimal, toAddress string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		signed, err := s.BuildTransfer(tokenID, amount, toAddress)
		ch <- Result{Tx: signed, Err: err}
	}()
	return ch
}
