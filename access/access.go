// Package access provides an ownership collaborator for ledger hosts.
// It tracks an owner identity with two-step transfer and renunciation;
// it gates nothing inside the ledger itself — hosts that want
// owner-only operations consult it before invoking them.
package access

import (
	"errors"
	"sync"

	"github.com/pflow-xyz/go-ledger/ledger"
)

var (
	ErrNotOwner        = errors.New("access: caller is not the owner")
	ErrNotPendingOwner = errors.New("access: caller is not the pending owner")
	ErrInvalidOwner    = errors.New("access: new owner is the zero address")
)

// Ownable tracks an owner with two-step transfer: the current owner
// nominates a successor, who must accept before ownership moves.
type Ownable struct {
	mu      sync.RWMutex
	owner   ledger.Address
	pending ledger.Address
}

// NewOwnable creates an Ownable with the given initial owner.
func NewOwnable(owner ledger.Address) (*Ownable, error) {
	if owner.IsZero() {
		return nil, ErrInvalidOwner
	}
	return &Ownable{owner: owner}, nil
}

// Owner returns the current owner, or the zero address after
// renunciation.
func (o *Ownable) Owner() ledger.Address {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.owner
}

// PendingOwner returns the nominated successor, if any.
func (o *Ownable) PendingOwner() ledger.Address {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.pending
}

// Require returns ErrNotOwner unless caller is the current owner.
func (o *Ownable) Require(caller ledger.Address) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if caller.IsZero() || caller != o.owner {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership nominates a successor. Only the current owner may
// nominate; the nomination replaces any previous one.
func (o *Ownable) TransferOwnership(caller, newOwner ledger.Address) error {
	if newOwner.IsZero() {
		return ErrInvalidOwner
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if caller.IsZero() || caller != o.owner {
		return ErrNotOwner
	}
	o.pending = newOwner
	return nil
}

// AcceptOwnership completes a two-step transfer. Only the nominated
// successor may accept.
func (o *Ownable) AcceptOwnership(caller ledger.Address) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending.IsZero() || caller != o.pending {
		return ErrNotPendingOwner
	}
	o.owner = o.pending
	o.pending = ledger.ZeroAddress
	return nil
}

// Renounce permanently abandons ownership, clearing any pending
// nomination. After renouncing, Require fails for every caller.
func (o *Ownable) Renounce(caller ledger.Address) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if caller.IsZero() || caller != o.owner {
		return ErrNotOwner
	}
	o.owner = ledger.ZeroAddress
	o.pending = ledger.ZeroAddress
	return nil
}
