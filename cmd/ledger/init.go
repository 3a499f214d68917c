package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/eventstore"
	"github.com/pflow-xyz/go-ledger/ledger"
)

const defaultStream = "main"

// genesisFile is the on-disk genesis config. The supply is a decimal
// string so JSON carries the full 256-bit range.
type genesisFile struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Decimals      *uint8 `json:"decimals,omitempty"`
	InitialHolder string `json:"initialHolder"`
	TotalSupply   string `json:"totalSupply"`
}

func initLedger(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	configPath := fs.String("config", "", "genesis config JSON file (required)")
	stream := fs.String("stream", defaultStream, "event stream name")
	fs.Parse(args)

	if *configPath == "" {
		return fmt.Errorf("-config is required")
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var gf genesisFile
	if err := json.Unmarshal(raw, &gf); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	supply, err := uint256.FromDecimal(gf.TotalSupply)
	if err != nil {
		return fmt.Errorf("total supply %q: %w", gf.TotalSupply, err)
	}
	decimals := ledger.DefaultDecimals
	if gf.Decimals != nil {
		decimals = *gf.Decimals
	}
	cfg := ledger.Config{
		InitialHolder: ledger.Address(gf.InitialHolder),
		TotalSupply:   supply,
		Name:          gf.Name,
		Symbol:        gf.Symbol,
		Decimals:      decimals,
	}

	store, err := eventstore.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := eventstore.Init(context.Background(), store, *stream, cfg, nil); err != nil {
		return err
	}

	logger.Info().
		Str("db", *dbPath).
		Str("symbol", cfg.Symbol).
		Str("holder", string(cfg.InitialHolder)).
		Str("supply", supply.Dec()).
		Msg("ledger created")

	fmt.Printf("Created %s (%s) with supply %s credited to %s\n",
		cfg.Name, cfg.Symbol, supply.Dec(), cfg.InitialHolder)
	return nil
}
