package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/projection"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

type unrecognizedEvent struct{}

func (unrecognizedEvent) Name() string { return "SomethingFromTheFuture" }

func TestProjectHistory(t *testing.T) {
	id := customer.NewID()
	now := time.Now()

	persisted := func(seq int, evt event.Event) event.Persisted {
		return event.Persisted{
			StreamID:       event.StreamID(id.String()),
			Version:        version.Version(seq),
			SequenceNumber: version.SequenceNumber(seq),
			Envelope:       event.ToEnvelope(evt),
		}
	}

	created := customer.WasCreated{
		ID:        id,
		FirstName: "A",
		LastName:  "Smith",
		Initials:  "A.",
		At:        now,
		By:        "tester",
	}

	nameChanged := customer.NameWasChanged{
		FirstName: "Bob",
		LastName:  "Smith",
		Initials:  "B.",
		At:        now,
		By:        "tester",
	}

	t.Run("it groups events by kind, holding the creation event out", func(t *testing.T) {
		history, err := customer.ProjectHistory([]event.Persisted{
			persisted(1, created),
			persisted(2, nameChanged),
			persisted(3, customer.OrderWasAdded{OrderID: "ORD-0001", At: now, By: "tester"}),
			persisted(4, customer.WasDeactivated{At: now, By: "tester"}),
			persisted(5, customer.WasActivated{At: now, By: "tester"}),
		})

		require.NoError(t, err)
		assert.Equal(t, created, history.Created)
		assert.Equal(t, []customer.NameWasChanged{nameChanged}, history.NameChanges)
		assert.Len(t, history.OrdersAdded, 1)
		assert.Len(t, history.Deactivations, 1)
		assert.Len(t, history.Activations, 1)
		assert.Empty(t, history.Deletions)
	})

	t.Run("it is idempotent", func(t *testing.T) {
		log := []event.Persisted{
			persisted(1, created),
			persisted(2, nameChanged),
		}

		first, err := customer.ProjectHistory(log)
		require.NoError(t, err)

		second, err := customer.ProjectHistory(log)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("it fails on a log with no creation event", func(t *testing.T) {
		_, err := customer.ProjectHistory([]event.Persisted{
			persisted(1, nameChanged),
		})

		assert.ErrorIs(t, err, projection.ErrMissingCreationEvent)
	})

	t.Run("it skips event kinds it does not recognize", func(t *testing.T) {
		history, err := customer.ProjectHistory([]event.Persisted{
			persisted(1, created),
			persisted(2, unrecognizedEvent{}),
			persisted(3, nameChanged),
		})

		require.NoError(t, err)
		assert.Equal(t, []customer.NameWasChanged{nameChanged}, history.NameChanges)
	})
}
