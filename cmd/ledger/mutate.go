package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/eventstore"
	"github.com/pflow-xyz/go-ledger/ledger"
)

// openJournal opens the store at path and replays the stream.
func openJournal(ctx context.Context, path, stream string) (*eventstore.Journal, *eventstore.SQLiteStore, error) {
	store, err := eventstore.NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	j, err := eventstore.Open(ctx, store, stream, nil)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return j, store, nil
}

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	caller := fs.String("caller", "", "sending account (required)")
	to := fs.String("to", "", "recipient account (required)")
	amountStr := fs.String("amount", "", "amount in smallest units (required)")
	fs.Parse(args)

	amount, err := requireAmount(*amountStr)
	if err != nil {
		return err
	}
	if *caller == "" || *to == "" {
		return fmt.Errorf("-caller and -to are required")
	}

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := j.Transfer(ctx, ledger.Address(*caller), ledger.Address(*to), amount); err != nil {
		return err
	}

	logger.Info().
		Str("from", *caller).
		Str("to", *to).
		Str("amount", amount.Dec()).
		Int("version", j.Version()).
		Msg("transfer recorded")

	fmt.Printf("Transferred %s from %s to %s\n", amount.Dec(), *caller, *to)
	return nil
}

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	caller := fs.String("caller", "", "owner account (required)")
	spender := fs.String("spender", "", "spender account (required)")
	amountStr := fs.String("amount", "", "allowance in smallest units (required)")
	fs.Parse(args)

	amount, err := requireAmount(*amountStr)
	if err != nil {
		return err
	}
	if *caller == "" || *spender == "" {
		return fmt.Errorf("-caller and -spender are required")
	}

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := j.Approve(ctx, ledger.Address(*caller), ledger.Address(*spender), amount); err != nil {
		return err
	}

	logger.Info().
		Str("owner", *caller).
		Str("spender", *spender).
		Str("amount", amount.Dec()).
		Int("version", j.Version()).
		Msg("approval recorded")

	fmt.Printf("Approved %s to spend %s on behalf of %s\n", *spender, amount.Dec(), *caller)
	return nil
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transferfrom", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	caller := fs.String("caller", "", "spending account (required)")
	from := fs.String("from", "", "owner account (required)")
	to := fs.String("to", "", "recipient account (required)")
	amountStr := fs.String("amount", "", "amount in smallest units (required)")
	fs.Parse(args)

	amount, err := requireAmount(*amountStr)
	if err != nil {
		return err
	}
	if *caller == "" || *from == "" || *to == "" {
		return fmt.Errorf("-caller, -from and -to are required")
	}

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := j.TransferFrom(ctx, ledger.Address(*caller), ledger.Address(*from), ledger.Address(*to), amount); err != nil {
		return err
	}

	logger.Info().
		Str("caller", *caller).
		Str("from", *from).
		Str("to", *to).
		Str("amount", amount.Dec()).
		Int("version", j.Version()).
		Msg("delegated transfer recorded")

	fmt.Printf("Transferred %s from %s to %s (spent by %s)\n", amount.Dec(), *from, *to, *caller)
	return nil
}

func requireAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("-amount is required")
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, err)
	}
	return amount, nil
}
