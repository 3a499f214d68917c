package ledger

import (
	"sort"

	"github.com/holiman/uint256"
)

// Snapshot is a deep copy of a ledger's state at a point in time. It is
// detached from the live ledger: mutating it has no effect on the
// ledger, and subsequent ledger operations have no effect on it.
type Snapshot struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int
	Balances    map[Address]*uint256.Int
	Allowances  map[Address]map[Address]*uint256.Int
}

// Snapshot returns a consistent deep copy of the ledger state. Only
// non-zero balances and allowances appear in the maps.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := &Snapshot{
		Name:        l.name,
		Symbol:      l.symbol,
		Decimals:    l.decimals,
		TotalSupply: l.total.Clone(),
		Balances:    make(map[Address]*uint256.Int, len(l.balances)),
		Allowances:  make(map[Address]map[Address]*uint256.Int, len(l.allowances)),
	}
	for account, bal := range l.balances {
		snap.Balances[account] = bal.Clone()
	}
	for owner, byOwner := range l.allowances {
		dst := make(map[Address]*uint256.Int, len(byOwner))
		for spender, a := range byOwner {
			dst[spender] = a.Clone()
		}
		snap.Allowances[owner] = dst
	}
	return snap
}

// Accounts returns the accounts with non-zero balances, sorted.
func (s *Snapshot) Accounts() []Address {
	accounts := make([]Address, 0, len(s.Balances))
	for a := range s.Balances {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })
	return accounts
}

// Sum returns the sum of all balances in the snapshot.
func (s *Snapshot) Sum() *uint256.Int {
	sum := new(uint256.Int)
	for _, bal := range s.Balances {
		sum.Add(sum, bal)
	}
	return sum
}
