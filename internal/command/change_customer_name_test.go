package command_test

import (
	"testing"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	appcommand "github.com/amir-ae/commerce-api-lite-sub001/internal/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/scenario"
)

func TestChangeCustomerNameHandler(t *testing.T) {
	id := customer.NewID()
	now := time.Now()
	clock := func() time.Time { return now }

	commandHandlerFactory := func(s event.Store) appcommand.ChangeCustomerNameHandler {
		return appcommand.ChangeCustomerNameHandler{
			Clock:     clock,
			Getter:    aggregate.NewEventSourcedRepository(s, customer.Type),
			Committer: aggregate.Committer{Store: s},
		}
	}

	wasCreated := event.Persisted{
		StreamID:       event.StreamID(id.String()),
		Version:        1,
		SequenceNumber: 1,
		Envelope: event.ToEnvelope(customer.WasCreated{
			ID:        id,
			FirstName: "A",
			LastName:  "Smith",
			Initials:  "A.",
			At:        now,
			By:        "tester",
		}),
	}

	t.Run("it fails when the Customer does not exist", func(t *testing.T) {
		scenario.CommandHandler[appcommand.ChangeCustomerName, appcommand.ChangeCustomerNameHandler]().
			When(command.ToEnvelope(appcommand.ChangeCustomerName{
				ID:        id,
				FirstName: "Bob",
				LastName:  "Smith",
				By:        "tester",
			})).
			ThenError(aggregate.ErrRootNotFound).
			AssertOn(t, commandHandlerFactory)
	})

	t.Run("it records a single name change with fresh initials", func(t *testing.T) {
		scenario.CommandHandler[appcommand.ChangeCustomerName, appcommand.ChangeCustomerNameHandler]().
			Given(wasCreated).
			When(command.ToEnvelope(appcommand.ChangeCustomerName{
				ID:        id,
				FirstName: "Bob",
				LastName:  "Smith",
				By:        "tester",
			})).
			Then(event.Persisted{
				StreamID:       event.StreamID(id.String()),
				Version:        2,
				SequenceNumber: 2,
				Envelope: event.ToEnvelope(customer.NameWasChanged{
					FirstName: "Bob",
					LastName:  "Smith",
					Initials:  "B.",
					At:        now,
					By:        "tester",
				}),
			}).
			AssertOn(t, commandHandlerFactory)
	})

	t.Run("it fails when the Customer has been deactivated", func(t *testing.T) {
		scenario.CommandHandler[appcommand.ChangeCustomerName, appcommand.ChangeCustomerNameHandler]().
			Given(
				wasCreated,
				event.Persisted{
					StreamID:       event.StreamID(id.String()),
					Version:        2,
					SequenceNumber: 2,
					Envelope: event.ToEnvelope(customer.WasDeactivated{
						At: now,
						By: "tester",
					}),
				},
			).
			When(command.ToEnvelope(appcommand.ChangeCustomerName{
				ID:        id,
				FirstName: "Bob",
				LastName:  "Smith",
				By:        "tester",
			})).
			ThenError(customer.ErrNotActive).
			AssertOn(t, commandHandlerFactory)
	})
}
