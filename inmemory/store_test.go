package inmemory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/inmemory"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/projection"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

func TestEventStore(t *testing.T) {
	ctx := context.Background()
	id := customer.NewID()
	streamID := event.StreamID(id.String())
	now := time.Now()

	created := event.ToEnvelope(customer.WasCreated{
		ID:        id,
		FirstName: "Anna",
		LastName:  "Smith",
		Initials:  "A.",
		At:        now,
		By:        "tester",
	})

	nameChanged := event.ToEnvelope(customer.NameWasChanged{
		FirstName: "Bob",
		LastName:  "Smith",
		Initials:  "B.",
		At:        now,
		By:        "tester",
	})

	deactivated := event.ToEnvelope(customer.WasDeactivated{At: now, By: "tester"})

	t.Run("a batch of any size advances the version by one", func(t *testing.T) {
		store := inmemory.NewEventStore()

		v, err := store.Append(ctx, streamID, version.CheckExact(0), created, nameChanged)
		require.NoError(t, err)
		assert.Equal(t, version.Version(1), v)

		v, err = store.Append(ctx, streamID, version.CheckExact(1), deactivated)
		require.NoError(t, err)
		assert.Equal(t, version.Version(2), v)

		events, err := projection.ReadStream(ctx, store, streamID)
		require.NoError(t, err)
		require.Len(t, events, 3)

		// Sequence numbers are gap-free; versions tag the committing batch.
		assert.Equal(t, version.SequenceNumber(1), events[0].SequenceNumber)
		assert.Equal(t, version.SequenceNumber(2), events[1].SequenceNumber)
		assert.Equal(t, version.SequenceNumber(3), events[2].SequenceNumber)
		assert.Equal(t, version.Version(1), events[0].Version)
		assert.Equal(t, version.Version(1), events[1].Version)
		assert.Equal(t, version.Version(2), events[2].Version)
	})

	t.Run("a stale expected version fails and leaves the log unchanged", func(t *testing.T) {
		store := inmemory.NewEventStore()

		_, err := store.Append(ctx, streamID, version.CheckExact(0), created)
		require.NoError(t, err)

		_, err = store.Append(ctx, streamID, version.CheckExact(0), nameChanged)
		assert.ErrorIs(t, err, version.ConflictError{Expected: 0, Actual: 1})

		events, err := projection.ReadStream(ctx, store, streamID)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("two racing commits: exactly one wins", func(t *testing.T) {
		store := inmemory.NewEventStore()

		_, err := store.Append(ctx, streamID, version.CheckExact(0), created)
		require.NoError(t, err)

		var (
			wg        sync.WaitGroup
			mx        sync.Mutex
			conflicts int
			successes int
		)

		for range 2 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := store.Append(ctx, streamID, version.CheckExact(1), nameChanged)

				mx.Lock()
				defer mx.Unlock()

				if err != nil {
					assert.ErrorIs(t, err, version.ConflictError{Expected: 1, Actual: 2})
					conflicts++
					return
				}

				successes++
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)

		events, err := projection.ReadStream(ctx, store, streamID)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("a batch append with one conflicting stream writes nothing", func(t *testing.T) {
		store := inmemory.NewEventStore()
		otherStreamID := event.StreamID("SN-2038-1234")

		_, err := store.Append(ctx, streamID, version.CheckExact(0), created)
		require.NoError(t, err)

		_, err = store.AppendBatch(ctx,
			event.Batch{
				StreamID: otherStreamID,
				Expected: version.CheckExact(0),
				Events:   []event.Envelope{deactivated},
			},
			event.Batch{
				StreamID: streamID,
				Expected: version.CheckExact(0), // stale
				Events:   []event.Envelope{nameChanged},
			},
		)
		assert.ErrorIs(t, err, version.ConflictError{Expected: 0, Actual: 1})

		events, err := projection.ReadStream(ctx, store, otherStreamID)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("streaming starts from the requested sequence number", func(t *testing.T) {
		store := inmemory.NewEventStore()

		_, err := store.Append(ctx, streamID, version.Any, created, nameChanged, deactivated)
		require.NoError(t, err)

		events, err := event.StreamToSlice(ctx, func(ctx context.Context, stream event.StreamWrite) error {
			return store.Stream(ctx, stream, streamID, version.Selector{From: 2})
		})
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, version.SequenceNumber(2), events[0].SequenceNumber)
	})
}

func TestTrackingEventStore(t *testing.T) {
	ctx := context.Background()
	id := customer.NewID()
	streamID := event.StreamID(id.String())
	now := time.Now()

	created := event.ToEnvelope(customer.WasCreated{
		ID:        id,
		FirstName: "Anna",
		LastName:  "Smith",
		Initials:  "A.",
		At:        now,
		By:        "tester",
	})

	t.Run("it records only the events appended through it", func(t *testing.T) {
		store := inmemory.NewEventStore()

		_, err := store.Append(ctx, streamID, version.Any, created)
		require.NoError(t, err)

		tracking := inmemory.NewTrackingEventStore(store)

		_, err = tracking.Append(ctx, streamID, version.CheckExact(1),
			event.ToEnvelope(customer.WasDeactivated{At: now, By: "tester"}),
		)
		require.NoError(t, err)

		recorded := tracking.Recorded()
		require.Len(t, recorded, 1)
		assert.Equal(t, version.Version(2), recorded[0].Version)
		assert.Equal(t, version.SequenceNumber(2), recorded[0].SequenceNumber)
	})
}
