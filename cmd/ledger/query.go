package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/pflow-xyz/go-ledger/commit"
	"github.com/pflow-xyz/go-ledger/ledger"
)

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	fs.Parse(args)

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	l := j.Ledger()
	snap := l.Snapshot()
	fmt.Printf("Name:         %s\n", l.Name())
	fmt.Printf("Symbol:       %s\n", l.Symbol())
	fmt.Printf("Decimals:     %d\n", l.Decimals())
	fmt.Printf("Total supply: %s\n", l.TotalSupply().Dec())
	fmt.Printf("Holders:      %d\n", len(snap.Balances))
	fmt.Printf("Events:       %d\n", j.Version()+1)
	return nil
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	account := fs.String("account", "", "account to query (required)")
	fs.Parse(args)

	if *account == "" {
		return fmt.Errorf("-account is required")
	}

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	bal := j.Ledger().BalanceOf(ledger.Address(*account))
	fmt.Printf("%s: %s\n", *account, bal.Dec())
	return nil
}

func allowance(args []string) error {
	fs := flag.NewFlagSet("allowance", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	owner := fs.String("owner", "", "owner account (required)")
	spender := fs.String("spender", "", "spender account (required)")
	fs.Parse(args)

	if *owner == "" || *spender == "" {
		return fmt.Errorf("-owner and -spender are required")
	}

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	a := j.Ledger().Allowance(ledger.Address(*owner), ledger.Address(*spender))
	fmt.Printf("%s -> %s: %s\n", *owner, *spender, a.Dec())
	return nil
}

func root(args []string) error {
	fs := flag.NewFlagSet("root", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	fs.Parse(args)

	ctx := context.Background()
	j, store, err := openJournal(ctx, *dbPath, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	snap := j.Ledger().Snapshot()
	mimcRoot, err := commit.Root(snap)
	if err != nil {
		return err
	}
	digest := commit.Digest(snap)
	fmt.Printf("MiMC root: %s\n", hex.EncodeToString(mimcRoot[:]))
	fmt.Printf("SHA-256:   %s\n", hex.EncodeToString(digest[:]))
	return nil
}
