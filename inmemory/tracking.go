package inmemory

import (
	"context"
	"sync"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// TrackingEventStore is an event.Store wrapper that keeps track of all
// the Domain Events that have been successfully appended through it.
//
// Useful in tests, to perform assertions on the events recorded
// by the component under test.
type TrackingEventStore struct {
	event.Store

	mx       sync.Mutex
	recorded []event.Persisted
}

// NewTrackingEventStore wraps the provided event.Store to track the Domain
// Events appended through it.
func NewTrackingEventStore(store event.Store) *TrackingEventStore {
	return &TrackingEventStore{Store: store}
}

// Recorded returns the Domain Events successfully appended through
// this instance, in append order.
func (es *TrackingEventStore) Recorded() []event.Persisted {
	es.mx.Lock()
	defer es.mx.Unlock()

	return es.recorded
}

// Append implements event.Appender.
//
// The append is routed through AppendBatch, so the recorded events carry
// the sequence numbers the underlying store assigned them.
func (es *TrackingEventStore) Append(
	ctx context.Context,
	id event.StreamID,
	expected version.Check,
	events ...event.Envelope,
) (version.Version, error) {
	persisted, err := es.AppendBatch(ctx, event.Batch{
		StreamID: id,
		Expected: expected,
		Events:   events,
	})
	if err != nil || len(persisted) == 0 {
		return 0, err
	}

	return persisted[len(persisted)-1].Version, nil
}

// AppendBatch implements event.BatchAppender.
func (es *TrackingEventStore) AppendBatch(ctx context.Context, batches ...event.Batch) ([]event.Persisted, error) {
	persisted, err := es.Store.AppendBatch(ctx, batches...)
	if err != nil {
		return persisted, err
	}

	es.mx.Lock()
	defer es.mx.Unlock()

	es.recorded = append(es.recorded, persisted...)

	return persisted, nil
}
