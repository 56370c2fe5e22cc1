package aggregate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// EventSourcedRepository provides an aggregate.Repository interface implementation
// that uses an event.Store to store and load the state of the Aggregate Root.
type EventSourcedRepository[I ID, T Root[I]] struct {
	eventStore event.Store
	typ        Type[I, T]
}

// NewEventSourcedRepository returns a new EventSourcedRepository implementation
// to store and load Aggregate Roots, using the provided Aggregate Type.
func NewEventSourcedRepository[I ID, T Root[I]](eventStore event.Store, typ Type[I, T]) EventSourcedRepository[I, T] {
	return EventSourcedRepository[I, T]{
		eventStore: eventStore,
		typ:        typ,
	}
}

// Get returns the Aggregate Root with the specified id, rehydrated
// from its Event Stream.
//
// aggregate.ErrRootNotFound is returned if no Event Stream exists
// for the specified Aggregate Root id.
func (repo EventSourcedRepository[I, T]) Get(ctx context.Context, id I) (T, error) {
	var zeroValue T

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	streamID := event.StreamID(id.String())
	eventStream := make(chan event.Persisted, 1)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := repo.eventStore.Stream(ctx, eventStream, streamID, version.SelectFromBeginning); err != nil {
			return fmt.Errorf("%T: failed while reading event from stream: %w", repo, err)
		}

		return nil
	})

	root := repo.typ.Factory()

	if err := RehydrateFromEvents[I](root, eventStream); err != nil {
		return zeroValue, fmt.Errorf("%T: failed to rehydrate aggregate root: %w", repo, err)
	}

	if err := group.Wait(); err != nil {
		return zeroValue, err
	}

	if root.Version() == 0 {
		return zeroValue, ErrRootNotFound
	}

	return root, nil
}

// Save appends the Domain Events recorded on the Aggregate Root to its
// Event Stream, using the version the root was loaded at as the expected
// Event Stream version.
//
// Save persists only: use an aggregate.Committer when the recorded events
// should also be dispatched to subscribers.
func (repo EventSourcedRepository[I, T]) Save(ctx context.Context, root T) error {
	events := root.FlushRecordedEvents()
	if len(events) == 0 {
		return nil
	}

	streamID := event.StreamID(root.AggregateID().String())
	expected := version.CheckExact(root.Version())

	newVersion, err := repo.eventStore.Append(ctx, streamID, expected, events...)
	if err != nil {
		return fmt.Errorf("%T: failed to commit recorded events: %w", repo, err)
	}

	root.setVersion(newVersion)

	return nil
}
