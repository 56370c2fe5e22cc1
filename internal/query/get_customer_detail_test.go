package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/inmemory"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
	appquery "github.com/amir-ae/commerce-api-lite-sub001/internal/query"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

type staticEnricher map[customer.OrderID]appquery.OrderDetail

func (e staticEnricher) EnrichOrder(_ context.Context, id customer.OrderID) (appquery.OrderDetail, error) {
	order, ok := e[id]
	if !ok {
		return appquery.OrderDetail{}, errors.New("staticEnricher: unknown order")
	}

	return order, nil
}

func TestGetCustomerDetailHandler(t *testing.T) {
	ctx := context.Background()
	id := customer.NewID()
	now := time.Now()

	seedCustomer := func(t *testing.T, orders ...customer.OrderID) *inmemory.EventStore {
		t.Helper()

		store := inmemory.NewEventStore()
		events := []event.Envelope{
			event.ToEnvelope(customer.WasCreated{
				ID:        id,
				FirstName: "Anna",
				LastName:  "Smith",
				Initials:  "A.",
				At:        now,
				By:        "tester",
			}),
		}

		for _, orderID := range orders {
			events = append(events, event.ToEnvelope(customer.OrderWasAdded{
				OrderID: orderID,
				At:      now,
				By:      "tester",
			}))
		}

		_, err := store.Append(ctx, event.StreamID(id.String()), version.Any, events...)
		require.NoError(t, err)

		return store
	}

	t.Run("it fails when the Customer does not exist", func(t *testing.T) {
		handler := appquery.GetCustomerDetailHandler{
			Getter:   aggregate.NewEventSourcedRepository(inmemory.NewEventStore(), customer.Type),
			Enricher: staticEnricher{},
		}

		_, err := handler.Handle(ctx, query.ToEnvelope(appquery.GetCustomerDetail{ID: id}))
		assert.ErrorIs(t, err, aggregate.ErrRootNotFound)
	})

	t.Run("it enriches every order and sorts them by id", func(t *testing.T) {
		store := seedCustomer(t, "ORD-0002", "ORD-0001")

		handler := appquery.GetCustomerDetailHandler{
			Getter: aggregate.NewEventSourcedRepository(store, customer.Type),
			Enricher: staticEnricher{
				"ORD-0001": {OrderID: "ORD-0001", ProductID: product.ID("SN-1"), ProductName: "Washing Machine"},
				"ORD-0002": {OrderID: "ORD-0002", ProductID: product.ID("SN-2"), ProductName: "Fridge"},
			},
			Concurrency: 2,
		}

		detail, err := handler.Handle(ctx, query.ToEnvelope(appquery.GetCustomerDetail{ID: id}))
		require.NoError(t, err)

		assert.Equal(t, "Anna", detail.FirstName)
		assert.True(t, detail.IsActive)
		assert.Equal(t, []appquery.OrderDetail{
			{OrderID: "ORD-0001", ProductID: product.ID("SN-1"), ProductName: "Washing Machine"},
			{OrderID: "ORD-0002", ProductID: product.ID("SN-2"), ProductName: "Fridge"},
		}, detail.Orders)
	})

	t.Run("it fails when one enrichment fails", func(t *testing.T) {
		store := seedCustomer(t, "ORD-0001", "ORD-0002")

		handler := appquery.GetCustomerDetailHandler{
			Getter: aggregate.NewEventSourcedRepository(store, customer.Type),
			Enricher: staticEnricher{
				"ORD-0001": {OrderID: "ORD-0001", ProductID: product.ID("SN-1"), ProductName: "Washing Machine"},
			},
		}

		_, err := handler.Handle(ctx, query.ToEnvelope(appquery.GetCustomerDetail{ID: id}))
		assert.Error(t, err)
	})
}
