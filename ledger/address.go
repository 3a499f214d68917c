package ledger

// Address is an opaque account identifier, typically a hex-encoded
// public address. The empty string is the zero address.
type Address string

// ZeroAddress is the reserved "no account" sentinel. It is never a valid
// recipient or spender; it appears as the sender only on the genesis
// notification.
const ZeroAddress Address = ""

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
