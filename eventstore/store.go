package eventstore

import (
	"context"
	"sync"
)

// Store is an append-only event store. Appends use optimistic
// concurrency: expectedVersion is the version of the last event the
// caller has seen, or -1 for a new stream.
type Store interface {
	// Append atomically appends events to a stream and returns the new
	// stream version. Fails with ErrConcurrencyConflict if the stream
	// has advanced past expectedVersion.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream with version >= fromVersion,
	// in version order. An unknown stream yields no events and no error.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// Version returns the current version of a stream, or -1 if the
	// stream has no events.
	Version(ctx context.Context, stream string) (int, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and ephemeral hosts.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append atomically appends events to a stream.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	current := len(existing) - 1
	if current != expectedVersion {
		return current, ErrConcurrencyConflict
	}

	for i, e := range events {
		e.Stream = stream
		e.Version = current + 1 + i
		cp := *e
		existing = append(existing, &cp)
	}
	s.streams[stream] = existing
	return len(existing) - 1, nil
}

// Read returns events with version >= fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.streams[stream] {
		if e.Version >= fromVersion {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Version returns the current stream version, or -1 for an unknown
// stream.
func (s *MemoryStore) Version(ctx context.Context, stream string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
