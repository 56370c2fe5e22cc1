package command_test

import (
	"testing"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	appcommand "github.com/amir-ae/commerce-api-lite-sub001/internal/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
	"github.com/amir-ae/commerce-api-lite-sub001/scenario"
)

func TestPlaceOrderHandler(t *testing.T) {
	customerID := customer.NewID()
	previousOwnerID := customer.NewID()
	productID := product.ID("SN-2038-1234")
	orderID := customer.OrderID("ORD-0001")
	now := time.Now()
	clock := func() time.Time { return now }

	commandHandlerFactory := func(s event.Store) appcommand.PlaceOrderHandler {
		return appcommand.PlaceOrderHandler{
			Clock:     clock,
			Customers: aggregate.NewEventSourcedRepository(s, customer.Type),
			Products:  aggregate.NewEventSourcedRepository(s, product.Type),
			Committer: aggregate.Committer{Store: s},
		}
	}

	customerWasCreated := event.Persisted{
		StreamID:       event.StreamID(customerID.String()),
		Version:        1,
		SequenceNumber: 1,
		Envelope: event.ToEnvelope(customer.WasCreated{
			ID:        customerID,
			FirstName: "Anna",
			LastName:  "Smith",
			Initials:  "A.",
			At:        now,
			By:        "tester",
		}),
	}

	productWasCreated := event.Persisted{
		StreamID:       event.StreamID(productID.String()),
		Version:        1,
		SequenceNumber: 1,
		Envelope: event.ToEnvelope(product.WasCreated{
			ID:          productID,
			ProductName: "Washing Machine",
			Owner:       previousOwnerID,
			At:          now,
			By:          "tester",
		}),
	}

	t.Run("it fails when the Customer does not exist", func(t *testing.T) {
		scenario.CommandHandler[appcommand.PlaceOrder, appcommand.PlaceOrderHandler]().
			Given(productWasCreated).
			When(command.ToEnvelope(appcommand.PlaceOrder{
				OrderID:    orderID,
				CustomerID: customerID,
				ProductID:  productID,
				By:         "tester",
			})).
			ThenError(aggregate.ErrRootNotFound).
			AssertOn(t, commandHandlerFactory)
	})

	t.Run("it fails when the Product does not exist", func(t *testing.T) {
		scenario.CommandHandler[appcommand.PlaceOrder, appcommand.PlaceOrderHandler]().
			Given(customerWasCreated).
			When(command.ToEnvelope(appcommand.PlaceOrder{
				OrderID:    orderID,
				CustomerID: customerID,
				ProductID:  productID,
				By:         "tester",
			})).
			ThenError(aggregate.ErrRootNotFound).
			AssertOn(t, commandHandlerFactory)
	})

	t.Run("it commits both aggregates in one unit of work", func(t *testing.T) {
		scenario.CommandHandler[appcommand.PlaceOrder, appcommand.PlaceOrderHandler]().
			Given(customerWasCreated, productWasCreated).
			When(command.ToEnvelope(appcommand.PlaceOrder{
				OrderID:    orderID,
				CustomerID: customerID,
				ProductID:  productID,
				By:         "tester",
			})).
			Then(
				event.Persisted{
					StreamID:       event.StreamID(customerID.String()),
					Version:        2,
					SequenceNumber: 2,
					Envelope: event.ToEnvelope(customer.OrderWasAdded{
						OrderID: orderID,
						At:      now,
						By:      "tester",
					}),
				},
				event.Persisted{
					StreamID:       event.StreamID(productID.String()),
					Version:        2,
					SequenceNumber: 2,
					Envelope: event.ToEnvelope(product.OwnerWasChanged{
						Owner: customerID,
						At:    now,
						By:    "tester",
					}),
				},
			).
			AssertOn(t, commandHandlerFactory)
	})

	t.Run("it fails when the Customer already owns the Product", func(t *testing.T) {
		scenario.CommandHandler[appcommand.PlaceOrder, appcommand.PlaceOrderHandler]().
			Given(
				customerWasCreated,
				event.Persisted{
					StreamID:       event.StreamID(productID.String()),
					Version:        1,
					SequenceNumber: 1,
					Envelope: event.ToEnvelope(product.WasCreated{
						ID:          productID,
						ProductName: "Washing Machine",
						Owner:       customerID,
						At:          now,
						By:          "tester",
					}),
				},
			).
			When(command.ToEnvelope(appcommand.PlaceOrder{
				OrderID:    orderID,
				CustomerID: customerID,
				ProductID:  productID,
				By:         "tester",
			})).
			ThenError(product.ErrSameOwner).
			AssertOn(t, commandHandlerFactory)
	})
}
