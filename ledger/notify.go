package ledger

import (
	"github.com/holiman/uint256"
)

// Kind identifies the kind of a notification.
type Kind string

const (
	// KindTransfer records a balance movement. From is the zero address
	// exactly once, on the genesis notification.
	KindTransfer Kind = "Transfer"

	// KindApproval records an allowance being set. From is the owner and
	// To the spender.
	KindApproval Kind = "Approval"
)

// Notification is an externally observable record of a committed state
// change. Notifications are emitted strictly after the mutation they
// describe is finalized; an observer that re-enters the ledger from its
// callback is rejected with ErrReentrantCall.
type Notification struct {
	Kind  Kind
	From  Address
	To    Address
	Value *uint256.Int
}

// Sink receives notifications from a ledger. Implementations must not
// assume they can mutate the ledger from inside Notify.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) {
	f(n)
}
