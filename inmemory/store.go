// Package inmemory provides in-memory event.Store implementations,
// mainly useful for testing and local development.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

var _ event.Store = &EventStore{}

type stream struct {
	version version.Version
	events  []event.Persisted
}

// EventStore is an in-memory event.Store implementation.
type EventStore struct {
	mx      sync.RWMutex
	streams map[event.StreamID]*stream
}

// NewEventStore creates a new empty inmemory.EventStore instance.
func NewEventStore() *EventStore {
	return &EventStore{
		streams: make(map[event.StreamID]*stream),
	}
}

func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("inmemory.EventStore: context error: %w", err)
	}

	return nil
}

// Stream streams committed events in the Event Store onto the provided
// EventStream, starting from the sequence number specified by the selector.
//
// Note: this call is synchronous, and will return when all the Events
// have been successfully written to the provided EventStream, or when
// the context has been canceled.
//
// This method fails only when the context is canceled.
func (es *EventStore) Stream(
	ctx context.Context,
	eventStream event.StreamWrite,
	id event.StreamID,
	selector version.Selector,
) error {
	es.mx.RLock()
	defer es.mx.RUnlock()
	defer close(eventStream)

	s, ok := es.streams[id]
	if !ok {
		return nil
	}

	for _, evt := range s.events {
		if evt.SequenceNumber < selector.From {
			continue
		}

		select {
		case eventStream <- evt:
		case <-ctx.Done():
			return contextErr(ctx)
		}
	}

	return nil
}

// checkExpected verifies the optimistic concurrency expectation against
// the current stream version. Must be called with the write lock held.
func (es *EventStore) checkExpected(id event.StreamID, expected version.Check) (*stream, error) {
	s, ok := es.streams[id]
	if !ok {
		s = &stream{}
	}

	if v, isExact := expected.(version.CheckExact); isExact && version.Version(v) != s.version {
		return nil, fmt.Errorf("inmemory.EventStore: failed to append events: %w", version.ConflictError{
			Expected: version.Version(v),
			Actual:   s.version,
		})
	}

	return s, nil
}

func (es *EventStore) append(id event.StreamID, s *stream, events []event.Envelope) []event.Persisted {
	if len(events) == 0 {
		return nil
	}

	s.version++

	persisted := make([]event.Persisted, 0, len(events))

	for _, evt := range events {
		s.events = append(s.events, event.Persisted{
			StreamID:       id,
			Version:        s.version,
			SequenceNumber: version.SequenceNumber(len(s.events) + 1),
			Envelope:       evt,
		})

		persisted = append(persisted, s.events[len(s.events)-1])
	}

	es.streams[id] = s

	return persisted
}

// Append inserts the specified Domain Events into the Event Stream specified
// by the current instance, returning the new version of the Event Stream.
//
// version.CheckExact can be used to perform an Optimistic Concurrency check
// on append, using the version of the Event Stream the Aggregate was loaded
// at; version.Any skips the check.
//
// An error wrapping version.ConflictError is returned if the optimistic
// concurrency check fails against the current version of the Event Stream.
func (es *EventStore) Append(
	ctx context.Context,
	id event.StreamID,
	expected version.Check,
	events ...event.Envelope,
) (version.Version, error) {
	es.mx.Lock()
	defer es.mx.Unlock()

	if err := contextErr(ctx); err != nil {
		return 0, err
	}

	s, err := es.checkExpected(id, expected)
	if err != nil {
		return 0, err
	}

	es.append(id, s, events)

	return s.version, nil
}

// AppendBatch atomically inserts multiple event batches, each targeting
// its own Event Stream.
//
// Every batch's version expectation is verified before any event is written:
// a single conflict fails the whole call, leaving all streams untouched.
func (es *EventStore) AppendBatch(ctx context.Context, batches ...event.Batch) ([]event.Persisted, error) {
	es.mx.Lock()
	defer es.mx.Unlock()

	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	streams := make([]*stream, 0, len(batches))
	seen := make(map[event.StreamID]struct{}, len(batches))

	for _, batch := range batches {
		if _, ok := seen[batch.StreamID]; ok {
			return nil, fmt.Errorf("inmemory.EventStore: duplicate stream '%s' in batch append", batch.StreamID)
		}

		seen[batch.StreamID] = struct{}{}

		s, err := es.checkExpected(batch.StreamID, batch.Expected)
		if err != nil {
			return nil, err
		}

		streams = append(streams, s)
	}

	var persisted []event.Persisted

	for i, batch := range batches {
		persisted = append(persisted, es.append(batch.StreamID, streams[i], batch.Events)...)
	}

	return persisted, nil
}
