/*

This is the fungible-asset boundary the pool engine trades across. The engine
only ever sees the Token interface; the in-memory Ledger below implements it
with standard transferable-balance semantics (transfer, transferFrom with
prior allowance, balanceOf).

*/

package token

import (
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"
)

// Token is the transferable-asset contract the pool engine depends on.
// Any failure return from Transfer or TransferFrom aborts the surrounding
// pool operation.
type Token interface {
	// Denom returns the asset's denomination, e.g. "uatom".
	Denom() string

	// BalanceOf returns the holder's current balance. Unknown holders have
	// a zero balance.
	BalanceOf(holder string) math.Int

	// Transfer moves amount from one holder to another.
	Transfer(from, to string, amount math.Int) error

	// TransferFrom moves amount from owner to recipient on behalf of spender,
	// consuming the owner's allowance for that spender.
	TransferFrom(owner, spender, to string, amount math.Int) error
}

// Sentinel errors surfaced by the ledger.
var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrEmptyAddress          = errors.New("holder address cannot be empty")
)

// Ledger is an in-memory Token implementation. All methods are safe for
// concurrent use.
type Ledger struct {
	mu          sync.RWMutex
	denom       string
	totalSupply math.Int
	balances    map[string]math.Int
	allowances  map[string]map[string]math.Int
}

// NewLedger creates an empty ledger for the given denomination.
func NewLedger(denom string) *Ledger {
	return &Ledger{
		denom:       denom,
		totalSupply: math.ZeroInt(),
		balances:    make(map[string]math.Int),
		allowances:  make(map[string]map[string]math.Int),
	}
}

func (l *Ledger) Denom() string {
	return l.denom
}

// TotalSupply returns the aggregate minted supply. Invariant: equals the sum
// of all balances.
func (l *Ledger) TotalSupply() math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}

func (l *Ledger) BalanceOf(holder string) math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceOf(holder)
}

// balanceOf requires l.mu held.
func (l *Ledger) balanceOf(holder string) math.Int {
	if bal, ok := l.balances[holder]; ok {
		return bal
	}
	return math.ZeroInt()
}

// Mint creates amount new units and credits them to holder.
func (l *Ledger) Mint(holder string, amount math.Int) error {
	if holder == "" {
		return ErrEmptyAddress
	}
	if amount.IsNegative() {
		return fmt.Errorf("cannot mint negative amount %s %s", amount, l.denom)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[holder] = l.balanceOf(holder).Add(amount)
	l.totalSupply = l.totalSupply.Add(amount)
	return nil
}

// Burn destroys amount units held by holder.
func (l *Ledger) Burn(holder string, amount math.Int) error {
	if holder == "" {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bal := l.balanceOf(holder)
	if bal.LT(amount) {
		return fmt.Errorf("%w: have %s, need %s %s", ErrInsufficientBalance, bal, amount, l.denom)
	}
	l.balances[holder] = bal.Sub(amount)
	l.totalSupply = l.totalSupply.Sub(amount)
	return nil
}

func (l *Ledger) Transfer(from, to string, amount math.Int) error {
	if from == "" || to == "" {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// Approve sets spender's allowance over owner's balance. Overwrites any
// previous allowance.
func (l *Ledger) Approve(owner, spender string, amount math.Int) error {
	if owner == "" || spender == "" {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[string]math.Int)
	}
	l.allowances[owner][spender] = amount
	return nil
}

// Allowance returns the remaining amount spender may move out of owner's balance.
func (l *Ledger) Allowance(owner, spender string) math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if granted, ok := l.allowances[owner][spender]; ok {
		return granted
	}
	return math.ZeroInt()
}

func (l *Ledger) TransferFrom(owner, spender, to string, amount math.Int) error {
	if owner == "" || spender == "" || to == "" {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	granted := math.ZeroInt()
	if g, ok := l.allowances[owner][spender]; ok {
		granted = g
	}
	if granted.LT(amount) {
		return fmt.Errorf("%w: spender %s has %s, needs %s %s",
			ErrInsufficientAllowance, spender, granted, amount, l.denom)
	}

	if err := l.move(owner, to, amount); err != nil {
		return err
	}
	l.allowances[owner][spender] = granted.Sub(amount)
	return nil
}

// move requires l.mu held.
func (l *Ledger) move(from, to string, amount math.Int) error {
	if amount.IsNegative() {
		return fmt.Errorf("cannot transfer negative amount %s %s", amount, l.denom)
	}

	fromBal := l.balanceOf(from)
	if fromBal.LT(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s %s",
			ErrInsufficientBalance, from, fromBal, amount, l.denom)
	}

	l.balances[from] = fromBal.Sub(amount)
	l.balances[to] = l.balanceOf(to).Add(amount)
	return nil
}
