package token

// ShareToken is the fungible pool-share unit issued by a pool. It reuses the
// ledger's transfer and balance bookkeeping; the pool engine is the only
// caller of Mint and Burn, but holders may transfer shares peer-to-peer.
type ShareToken struct {
	*Ledger
}

// NewShareToken creates a share token for the given pool identity,
// e.g. "cpmm-share-uatom:uusdc".
func NewShareToken(poolID string) *ShareToken {
	return &ShareToken{Ledger: NewLedger("cpmm-share-" + poolID)}
}
