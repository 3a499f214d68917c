package ledger

import "errors"

var (
	// Construction errors
	ErrInvalidConfiguration = errors.New("ledger: invalid configuration")

	// Precondition errors
	ErrInvalidRecipient      = errors.New("ledger: recipient is the zero address")
	ErrInvalidSpender        = errors.New("ledger: spender is the zero address")
	ErrInsufficientBalance   = errors.New("ledger: insufficient balance")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")

	// Concurrency errors
	ErrReentrantCall = errors.New("ledger: reentrant call")

	// Invariant errors
	ErrConservationViolated = errors.New("ledger: total supply conservation violated")
	ErrBalanceOverflow      = errors.New("ledger: balance overflow")
)
