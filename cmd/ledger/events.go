package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pflow-xyz/go-ledger/eventstore"
	"github.com/pflow-xyz/go-ledger/notelog"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	dbPath := fs.String("db", "ledger.db", "ledger database path")
	stream := fs.String("stream", defaultStream, "event stream name")
	format := fs.String("format", "text", "output format: text, jsonl, notify-jsonl or notify-csv")
	from := fs.Int("from", 0, "first event version to show (text and jsonl only)")
	fs.Parse(args)

	store, err := eventstore.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	recorded, err := store.Read(context.Background(), *stream, *from)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		fmt.Println("No events.")
		return nil
	}

	switch *format {
	case "jsonl":
		enc := json.NewEncoder(os.Stdout)
		for _, e := range recorded {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
	case "text":
		for _, e := range recorded {
			fmt.Printf("%4d  %-22s %s  %s\n",
				e.Version, e.Type, e.At.Format(time.RFC3339), string(e.Data))
		}
	case "notify-jsonl", "notify-csv":
		// Regenerate the notification history by replaying the full
		// stream into a notification log.
		if *from != 0 {
			return fmt.Errorf("-from is not supported with %s", *format)
		}
		log := notelog.NewLog()
		if _, err := eventstore.Rebuild(recorded, log); err != nil {
			return err
		}
		if *format == "notify-csv" {
			return log.WriteCSV(os.Stdout)
		}
		return log.WriteJSONL(os.Stdout)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	return nil
}
