// Package ledger implements a fixed-supply fungible-token ledger: a
// single authoritative registry of account balances and delegated
// spending allowances with ERC-20 style transfer semantics.
//
// The ledger holds exactly one asset. The full supply is credited to a
// designated holder at construction and is conserved forever after —
// there is no mint and no burn. All amounts are 256-bit unsigned
// integers; every subtraction is checked, never wrapped.
package ledger

import (
	"sync"
	"sync/atomic"

	"github.com/holiman/uint256"
)

// Ledger owns all balances and allowances for a single fixed-supply
// asset. Read operations take a shared lock and observe a consistent
// snapshot; the mutating operations (Transfer, Approve, TransferFrom)
// are additionally serialized through a two-state reentrancy latch:
// entering while another mutating call is in flight fails with
// ErrReentrantCall rather than blocking.
type Ledger struct {
	name     string
	symbol   string
	decimals uint8
	total    *uint256.Int

	mu         sync.RWMutex
	balances   map[Address]*uint256.Int
	allowances map[Address]map[Address]*uint256.Int

	busy atomic.Bool
	sink Sink
}

// New constructs a ledger from cfg, crediting the entire supply to
// cfg.InitialHolder, and emits the genesis Transfer notification (from
// the zero address) to sink. A nil sink discards notifications. A nil
// TotalSupply is treated as zero.
func New(cfg Config, sink Sink) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := new(uint256.Int)
	if cfg.TotalSupply != nil {
		total.Set(cfg.TotalSupply)
	}

	l := &Ledger{
		name:       cfg.Name,
		symbol:     cfg.Symbol,
		decimals:   cfg.Decimals,
		total:      total,
		balances:   make(map[Address]*uint256.Int),
		allowances: make(map[Address]map[Address]*uint256.Int),
		sink:       sink,
	}
	if !total.IsZero() {
		l.balances[cfg.InitialHolder] = total.Clone()
	}

	l.notify(Notification{
		Kind:  KindTransfer,
		From:  ZeroAddress,
		To:    cfg.InitialHolder,
		Value: total.Clone(),
	})
	return l, nil
}

// SetSink replaces the notification sink. Intended for host wiring
// (e.g. attaching a recorder after replaying history); must not be
// called from inside a Notify callback.
func (l *Ledger) SetSink(sink Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = sink
}

// Name returns the descriptive asset name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the descriptive asset symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// Decimals returns the denomination scale.
func (l *Ledger) Decimals() uint8 { return l.decimals }

// TotalSupply returns the fixed total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.total.Clone()
}

// BalanceOf returns the balance of account. Unknown accounts have
// balance zero; BalanceOf never fails.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if bal, ok := l.balances[account]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}

// Allowance returns the amount spender may still move out of owner's
// balance. Unset allowances are zero; Allowance never fails.
func (l *Ledger) Allowance(owner, spender Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if a, ok := l.allowances[owner][spender]; ok {
		return a.Clone()
	}
	return new(uint256.Int)
}

// Transfer moves amount from caller to to. It fails with
// ErrInvalidRecipient if to is the zero address and with
// ErrInsufficientBalance if caller's balance is below amount.
// Self-transfer is permitted: it leaves every balance unchanged but
// still checks the balance precondition and still emits a
// notification. A nil amount is treated as zero.
func (l *Ledger) Transfer(caller, to Address, amount *uint256.Int) error {
	if !l.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer l.busy.Store(false)

	if to.IsZero() {
		return ErrInvalidRecipient
	}
	amount = valueOrZero(amount)

	l.mu.Lock()
	if err := l.move(caller, to, amount); err != nil {
		l.mu.Unlock()
		return err
	}
	l.mu.Unlock()

	// Emit after commit, latch still held.
	l.notify(Notification{Kind: KindTransfer, From: caller, To: to, Value: amount.Clone()})
	return nil
}

// Approve sets the allowance of spender over caller's balance to
// amount. This is an unconditional overwrite, not an increment: two
// consecutive approvals leave the second amount, not the sum. Callers
// changing a nonzero allowance to a different nonzero value should
// re-approve to zero first to avoid the classic race on this entry
// point; that is a usage caveat, not an enforced precondition. Fails
// with ErrInvalidSpender if spender is the zero address.
func (l *Ledger) Approve(caller, spender Address, amount *uint256.Int) error {
	if !l.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer l.busy.Store(false)

	if spender.IsZero() {
		return ErrInvalidSpender
	}
	amount = valueOrZero(amount)

	l.mu.Lock()
	byOwner, ok := l.allowances[caller]
	if !ok {
		byOwner = make(map[Address]*uint256.Int)
		l.allowances[caller] = byOwner
	}
	if amount.IsZero() {
		delete(byOwner, spender)
		if len(byOwner) == 0 {
			delete(l.allowances, caller)
		}
	} else {
		byOwner[spender] = amount.Clone()
	}
	l.mu.Unlock()

	l.notify(Notification{Kind: KindApproval, From: caller, To: spender, Value: amount.Clone()})
	return nil
}

// TransferFrom moves amount from from to to, spending caller's
// allowance. Both the balance and the allowance precondition are
// evaluated before any mutation; on success the allowance is reduced
// by amount. Fails with ErrInvalidRecipient, ErrInsufficientBalance or
// ErrInsufficientAllowance.
func (l *Ledger) TransferFrom(caller, from, to Address, amount *uint256.Int) error {
	if !l.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer l.busy.Store(false)

	if to.IsZero() {
		return ErrInvalidRecipient
	}
	amount = valueOrZero(amount)

	l.mu.Lock()
	if l.balanceLocked(from).Lt(amount) {
		l.mu.Unlock()
		return ErrInsufficientBalance
	}
	remaining := l.allowanceLocked(from, caller)
	if remaining.Lt(amount) {
		l.mu.Unlock()
		return ErrInsufficientAllowance
	}
	if err := l.move(from, to, amount); err != nil {
		l.mu.Unlock()
		return err
	}
	newRemaining, borrow := new(uint256.Int).SubOverflow(remaining, amount)
	if borrow {
		// Unreachable after the precondition; kept as a hard guard.
		l.mu.Unlock()
		return ErrInsufficientAllowance
	}
	if newRemaining.IsZero() {
		delete(l.allowances[from], caller)
		if len(l.allowances[from]) == 0 {
			delete(l.allowances, from)
		}
	} else {
		l.allowances[from][caller] = newRemaining
	}
	l.mu.Unlock()

	l.notify(Notification{Kind: KindTransfer, From: from, To: to, Value: amount.Clone()})
	return nil
}

// move debits from and credits to. Caller must hold l.mu.
func (l *Ledger) move(from, to Address, amount *uint256.Int) error {
	bal := l.balanceLocked(from)
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	newBal, borrow := new(uint256.Int).SubOverflow(bal, amount)
	if borrow {
		// Unreachable after the precondition; kept as a hard guard.
		return ErrInsufficientBalance
	}
	if newBal.IsZero() {
		delete(l.balances, from)
	} else {
		l.balances[from] = newBal
	}

	credited, overflow := new(uint256.Int).AddOverflow(l.balanceLocked(to), amount)
	if overflow {
		// Conservation makes this unreachable: no balance can exceed
		// the total supply. Restore the debit and refuse.
		l.balances[from] = bal
		return ErrBalanceOverflow
	}
	if !credited.IsZero() {
		l.balances[to] = credited
	}
	return nil
}

// balanceLocked returns the stored balance without copying. Caller must
// hold l.mu; the result must not be mutated.
func (l *Ledger) balanceLocked(account Address) *uint256.Int {
	if bal, ok := l.balances[account]; ok {
		return bal
	}
	return new(uint256.Int)
}

// allowanceLocked returns the stored allowance without copying. Caller
// must hold l.mu; the result must not be mutated.
func (l *Ledger) allowanceLocked(owner, spender Address) *uint256.Int {
	if a, ok := l.allowances[owner][spender]; ok {
		return a
	}
	return new(uint256.Int)
}

func (l *Ledger) notify(n Notification) {
	if l.sink != nil {
		l.sink.Notify(n)
	}
}

// CheckInvariants verifies that the sum of all balances equals the
// total supply, returning ErrConservationViolated otherwise.
func (l *Ledger) CheckInvariants() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := new(uint256.Int)
	for _, bal := range l.balances {
		next, overflow := new(uint256.Int).AddOverflow(sum, bal)
		if overflow {
			return ErrConservationViolated
		}
		sum = next
	}
	if sum.Cmp(l.total) != 0 {
		return ErrConservationViolated
	}
	return nil
}

func valueOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
