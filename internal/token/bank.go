package token

import (
	"sync"
)

// Bank is the set of asset ledgers known to this deployment, one per denom.
// It stands in for the external asset contracts a deployed pool would trade
// against.
type Bank struct {
	mu      sync.RWMutex
	ledgers map[string]*Ledger
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{ledgers: make(map[string]*Ledger)}
}

// GetOrCreate returns the ledger for denom, creating an empty one if needed.
func (b *Bank) GetOrCreate(denom string) *Ledger {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ledger, ok := b.ledgers[denom]; ok {
		return ledger
	}
	ledger := NewLedger(denom)
	b.ledgers[denom] = ledger
	return ledger
}

// Get returns the ledger for denom, or nil if it was never created.
func (b *Bank) Get(denom string) *Ledger {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ledgers[denom]
}
