package notelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/ledger"
)

// jsonlEntry is the wire form of an Entry. Values are decimal strings
// to avoid precision loss in JSON numbers.
type jsonlEntry struct {
	Seq   uint64 `json:"seq"`
	Kind  string `json:"kind"`
	From  string `json:"from,omitempty"`
	To    string `json:"to"`
	Value string `json:"value"`
	At    string `json:"at"`
}

// WriteJSONL writes the log as JSON Lines, one entry per line.
func (l *Log) WriteJSONL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range l.Entries() {
		rec := jsonlEntry{
			Seq:   e.Seq,
			Kind:  string(e.Kind),
			From:  string(e.From),
			To:    string(e.To),
			Value: e.Value.Dec(),
			At:    e.At.Format(time.RFC3339Nano),
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding entry %d: %w", e.Seq, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL parses a JSONL stream written by WriteJSONL into a new log.
// Entries are resequenced in input order.
func ReadJSONL(r io.Reader) (*Log, error) {
	log := NewLog()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec jsonlEntry
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		value, err := uint256.FromDecimal(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", lineNum, rec.Value, err)
		}
		at, err := time.Parse(time.RFC3339Nano, rec.At)
		if err != nil {
			return nil, fmt.Errorf("line %d: timestamp %q: %w", lineNum, rec.At, err)
		}

		log.entries = append(log.entries, Entry{
			Seq:   uint64(len(log.entries)),
			Kind:  ledger.Kind(rec.Kind),
			From:  ledger.Address(rec.From),
			To:    ledger.Address(rec.To),
			Value: value,
			At:    at,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return log, nil
}
