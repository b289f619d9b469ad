// Package token implements SLP token descriptors and the fixed-point
// amount codec that converts between human decimal amounts and the raw
// 64-bit integer quantities carried on chain.
package token

import (
	"fmt"
	"sync"
)

// Descriptor holds the per-token metadata needed to interpret amounts.
type Descriptor struct {
	TokenID  string `json:"token_id"` // hex-encoded genesis txid
	Decimals uint8  `json:"decimals"` // fixed-point scaling factor
	Ticker   string `json:"ticker"`   // display only
}

// Validate checks the descriptor fields.
func (d *Descriptor) Validate() error {
	if d.TokenID == "" {
		return fmt.Errorf("%w: empty token id", ErrInvalidDescriptor)
	}
	return nil
}

// Registry is an in-memory descriptor registry keyed by token id.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]Descriptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]Descriptor)}
}

// Register adds or replaces a descriptor.
func (r *Registry) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[d.TokenID] = d
	return nil
}

// Descriptor looks up a token by id.
func (r *Registry) Descriptor(tokenID string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tokens[tokenID]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownToken, tokenID)
	}
	return d, nil
}
