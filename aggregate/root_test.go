package aggregate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/inmemory"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

func TestRoot(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("recording events does not advance the version", func(t *testing.T) {
		c, err := customer.Create(customer.NewID(), "Anna", "Smith", "tester", now)
		require.NoError(t, err)

		require.NoError(t, c.ChangeName("Bob", "Smith", "tester", now))

		assert.Equal(t, version.Version(0), c.Version())
		assert.Len(t, c.FlushRecordedEvents(), 2)
	})

	t.Run("flushing drains the recorded events queue", func(t *testing.T) {
		c, err := customer.Create(customer.NewID(), "Anna", "Smith", "tester", now)
		require.NoError(t, err)

		assert.Len(t, c.FlushRecordedEvents(), 1)
		assert.Empty(t, c.FlushRecordedEvents())
	})

	t.Run("rehydration reproduces the state and version of the log", func(t *testing.T) {
		store := inmemory.NewEventStore()
		repository := aggregate.NewEventSourcedRepository(store, customer.Type)
		committer := aggregate.Committer{Store: store}

		c, err := customer.Create(customer.NewID(), "Anna", "Smith", "tester", now)
		require.NoError(t, err)
		require.NoError(t, committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)))

		require.NoError(t, c.ChangeName("Bob", "Smith", "tester", now))
		require.NoError(t, c.AddOrder("ORD-0001", "tester", now))
		require.NoError(t, committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)))

		loaded, err := repository.Get(ctx, c.AggregateID())
		require.NoError(t, err)

		assert.Equal(t, c.AggregateID(), loaded.AggregateID())
		assert.Equal(t, version.Version(2), loaded.Version())
		assert.Equal(t, "Bob", loaded.FirstName())
		assert.Equal(t, "B.", loaded.Initials())
		assert.Equal(t, []customer.OrderID{"ORD-0001"}, loaded.Orders())
		assert.True(t, loaded.IsActive())
	})

	t.Run("getting an aggregate with no event stream fails", func(t *testing.T) {
		repository := aggregate.NewEventSourcedRepository(inmemory.NewEventStore(), customer.Type)

		_, err := repository.Get(ctx, customer.NewID())
		assert.ErrorIs(t, err, aggregate.ErrRootNotFound)
	})

	t.Run("saving a stale aggregate fails with a conflict", func(t *testing.T) {
		store := inmemory.NewEventStore()
		committer := aggregate.Committer{Store: store}

		c, err := customer.Create(customer.NewID(), "Anna", "Smith", "tester", now)
		require.NoError(t, err)
		require.NoError(t, committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)))

		// Simulate a concurrent writer advancing the stream.
		_, err = store.Append(
			ctx,
			event.StreamID(c.AggregateID().String()),
			version.CheckExact(1),
			event.ToEnvelope(customer.WasDeactivated{At: now, By: "other"}),
		)
		require.NoError(t, err)

		require.NoError(t, c.ChangeName("Bob", "Smith", "tester", now))

		err = committer.Commit(ctx, aggregate.ToCommit[customer.ID](c))
		assert.ErrorIs(t, err, version.ConflictError{Expected: 1, Actual: 2})
	})
}
