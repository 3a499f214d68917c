// Package eventstore persists ledger history as an append-only event
// stream with optimistic concurrency, and rebuilds ledgers by replay.
package eventstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common store errors.
var (
	// ErrConcurrencyConflict is returned when an append's expected
	// version does not match the stream's current version.
	ErrConcurrencyConflict = errors.New("eventstore: concurrency conflict")

	// ErrStreamNotFound is returned when reading a stream with no events.
	ErrStreamNotFound = errors.New("eventstore: stream not found")
)

// Event is a single persisted record. Version is assigned by the store
// on append; events within a stream are strictly ordered by version.
type Event struct {
	ID      string          `json:"id"`
	Stream  string          `json:"stream"`
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data,omitempty"`
	At      time.Time       `json:"at"`
}

// NewEvent creates an event with a fresh ID and JSON-encoded data.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding event data: %w", err)
		}
		raw = b
	}
	return &Event{
		ID:     uuid.New().String(),
		Stream: stream,
		Type:   eventType,
		Data:   raw,
		At:     time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event data into v.
func (e *Event) Decode(v any) error {
	if e.Data == nil {
		return errors.New("eventstore: event has no data")
	}
	return json.Unmarshal(e.Data, v)
}
