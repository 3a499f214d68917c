package eventstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/ledger"
)

// Event types recorded by a Journal.
const (
	TypeGenesis           = "Genesis"
	TypeTransfer          = "Transfer"
	TypeApproval          = "Approval"
	TypeDelegatedTransfer = "DelegatedTransfer"
)

// GenesisData is the payload of a Genesis event. The supply is a
// decimal string so JSON carries the full 256-bit range.
type GenesisData struct {
	InitialHolder string `json:"initialHolder"`
	TotalSupply   string `json:"totalSupply"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Decimals      uint8  `json:"decimals"`
}

// TransferData is the payload of a Transfer event.
type TransferData struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// ApprovalData is the payload of an Approval event.
type ApprovalData struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
}

// DelegatedTransferData is the payload of a DelegatedTransfer event.
// Unlike the transfer notification, it carries the caller so replay can
// reproduce the allowance decrement.
type DelegatedTransferData struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	Value  string `json:"value"`
}

// Journal executes ledger commands and records them as events, so a
// ledger can be rebuilt by replay. Mutations are serialized; each
// successful ledger operation is appended to the stream before the
// method returns.
type Journal struct {
	store  Store
	stream string

	mu      sync.Mutex
	ledger  *ledger.Ledger
	version int
}

// Init creates a new ledger from cfg and starts its journal stream.
// Fails with ErrConcurrencyConflict if the stream already has events.
// sink receives the ledger's notifications (nil discards them).
func Init(ctx context.Context, store Store, stream string, cfg ledger.Config, sink ledger.Sink) (*Journal, error) {
	l, err := ledger.New(cfg, sink)
	if err != nil {
		return nil, err
	}

	supply := new(uint256.Int)
	if cfg.TotalSupply != nil {
		supply.Set(cfg.TotalSupply)
	}
	event, err := NewEvent(stream, TypeGenesis, GenesisData{
		InitialHolder: string(cfg.InitialHolder),
		TotalSupply:   supply.Dec(),
		Name:          cfg.Name,
		Symbol:        cfg.Symbol,
		Decimals:      cfg.Decimals,
	})
	if err != nil {
		return nil, err
	}
	version, err := store.Append(ctx, stream, -1, []*Event{event})
	if err != nil {
		return nil, err
	}

	return &Journal{store: store, stream: stream, ledger: l, version: version}, nil
}

// Open rebuilds a ledger by replaying the journal stream, then attaches
// sink for subsequent notifications. Fails with ErrStreamNotFound if
// the stream has no events.
func Open(ctx context.Context, store Store, stream string, sink ledger.Sink) (*Journal, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrStreamNotFound
	}

	l, err := Rebuild(events, nil)
	if err != nil {
		return nil, err
	}
	l.SetSink(sink)

	return &Journal{
		store:   store,
		stream:  stream,
		ledger:  l,
		version: events[len(events)-1].Version,
	}, nil
}

// Ledger returns the journaled ledger. Mutate it only through the
// journal, or the stream will fall behind the live state.
func (j *Journal) Ledger() *ledger.Ledger {
	return j.ledger
}

// Version returns the version of the last recorded event.
func (j *Journal) Version() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.version
}

// Transfer executes a transfer and records it.
func (j *Journal) Transfer(ctx context.Context, caller, to ledger.Address, amount *uint256.Int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ledger.Transfer(caller, to, amount); err != nil {
		return err
	}
	return j.record(ctx, TypeTransfer, TransferData{
		From:  string(caller),
		To:    string(to),
		Value: decOrZero(amount),
	})
}

// Approve executes an approval and records it.
func (j *Journal) Approve(ctx context.Context, caller, spender ledger.Address, amount *uint256.Int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ledger.Approve(caller, spender, amount); err != nil {
		return err
	}
	return j.record(ctx, TypeApproval, ApprovalData{
		Owner:   string(caller),
		Spender: string(spender),
		Value:   decOrZero(amount),
	})
}

// TransferFrom executes a delegated transfer and records it.
func (j *Journal) TransferFrom(ctx context.Context, caller, from, to ledger.Address, amount *uint256.Int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ledger.TransferFrom(caller, from, to, amount); err != nil {
		return err
	}
	return j.record(ctx, TypeDelegatedTransfer, DelegatedTransferData{
		Caller: string(caller),
		From:   string(from),
		To:     string(to),
		Value:  decOrZero(amount),
	})
}

// record appends a command event. Caller must hold j.mu.
func (j *Journal) record(ctx context.Context, eventType string, data any) error {
	event, err := NewEvent(j.stream, eventType, data)
	if err != nil {
		return err
	}
	version, err := j.store.Append(ctx, j.stream, j.version, []*Event{event})
	if err != nil {
		return fmt.Errorf("recording %s: %w", eventType, err)
	}
	j.version = version
	return nil
}

// Rebuild replays a complete event stream into a fresh ledger with
// sink attached from genesis, so every historical operation re-emits
// its notification. The first event must be the genesis. Hosts that
// only need the final state should pass a nil sink.
func Rebuild(events []*Event, sink ledger.Sink) (*ledger.Ledger, error) {
	if len(events) == 0 {
		return nil, ErrStreamNotFound
	}
	if events[0].Type != TypeGenesis {
		return nil, fmt.Errorf("eventstore: stream starts with %s, want %s", events[0].Type, TypeGenesis)
	}

	var genesis GenesisData
	if err := events[0].Decode(&genesis); err != nil {
		return nil, fmt.Errorf("decoding genesis: %w", err)
	}
	supply, err := uint256.FromDecimal(genesis.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("genesis supply %q: %w", genesis.TotalSupply, err)
	}
	l, err := ledger.New(ledger.Config{
		InitialHolder: ledger.Address(genesis.InitialHolder),
		TotalSupply:   supply,
		Name:          genesis.Name,
		Symbol:        genesis.Symbol,
		Decimals:      genesis.Decimals,
	}, sink)
	if err != nil {
		return nil, err
	}

	for _, e := range events[1:] {
		if err := applyEvent(l, e); err != nil {
			return nil, fmt.Errorf("replaying event %d (%s): %w", e.Version, e.Type, err)
		}
	}
	return l, nil
}

func applyEvent(l *ledger.Ledger, e *Event) error {
	switch e.Type {
	case TypeTransfer:
		var d TransferData
		if err := e.Decode(&d); err != nil {
			return err
		}
		value, err := uint256.FromDecimal(d.Value)
		if err != nil {
			return err
		}
		return l.Transfer(ledger.Address(d.From), ledger.Address(d.To), value)

	case TypeApproval:
		var d ApprovalData
		if err := e.Decode(&d); err != nil {
			return err
		}
		value, err := uint256.FromDecimal(d.Value)
		if err != nil {
			return err
		}
		return l.Approve(ledger.Address(d.Owner), ledger.Address(d.Spender), value)

	case TypeDelegatedTransfer:
		var d DelegatedTransferData
		if err := e.Decode(&d); err != nil {
			return err
		}
		value, err := uint256.FromDecimal(d.Value)
		if err != nil {
			return err
		}
		return l.TransferFrom(ledger.Address(d.Caller), ledger.Address(d.From), ledger.Address(d.To), value)

	default:
		return fmt.Errorf("eventstore: unknown event type %q", e.Type)
	}
}

func decOrZero(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
