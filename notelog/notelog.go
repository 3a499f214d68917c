// Package notelog provides an append-only record of ledger
// notifications with JSONL and CSV export for external indexers.
package notelog

import (
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/ledger"
)

// Entry is a single recorded notification. For transfers, From and To
// are the sender and recipient; for approvals they are the owner and
// spender.
type Entry struct {
	Seq   uint64
	Kind  ledger.Kind
	From  ledger.Address
	To    ledger.Address
	Value *uint256.Int
	At    time.Time
}

// Log is an in-memory append-only notification record. It implements
// ledger.Sink and is safe for concurrent append and read.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Notify appends a notification to the log.
func (l *Log) Notify(n ledger.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	value := new(uint256.Int)
	if n.Value != nil {
		value.Set(n.Value)
	}
	l.entries = append(l.entries, Entry{
		Seq:   uint64(len(l.entries)),
		Kind:  n.Kind,
		From:  n.From,
		To:    n.To,
		Value: value,
		At:    l.now().UTC(),
	})
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of all recorded entries in sequence order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// ByKind returns the recorded entries of the given kind.
func (l *Log) ByKind(kind ledger.Kind) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ByAccount returns the recorded entries that touch the given account
// on either side.
func (l *Log) ByAccount(account ledger.Address) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.From == account || e.To == account {
			out = append(out, e)
		}
	}
	return out
}

// Summary holds aggregate statistics over a log.
type Summary struct {
	Entries   int
	Transfers int
	Approvals int
	Accounts  int          // distinct non-zero addresses seen
	Moved     *uint256.Int // total value moved by transfers, genesis included
}

// Summarize computes summary statistics for the log.
func (l *Log) Summarize() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{Entries: len(l.entries), Moved: new(uint256.Int)}
	accounts := make(map[ledger.Address]bool)
	for _, e := range l.entries {
		switch e.Kind {
		case ledger.KindTransfer:
			s.Transfers++
			s.Moved.Add(s.Moved, e.Value)
		case ledger.KindApproval:
			s.Approvals++
		}
		if !e.From.IsZero() {
			accounts[e.From] = true
		}
		if !e.To.IsZero() {
			accounts[e.To] = true
		}
	}
	s.Accounts = len(accounts)
	return s
}
