package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/logger"
	"github.com/amir-ae/commerce-api-lite-sub001/projection"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
)

// GetCustomerHistory is a Domain Query used to return the typed event
// history of a Customer.
type GetCustomerHistory struct {
	ID customer.ID
}

// Name implements message.Message.
func (GetCustomerHistory) Name() string { return "GetCustomerHistory" }

var _ query.Handler[GetCustomerHistory, customer.History] = GetCustomerHistoryHandler{}

// GetCustomerHistoryHandler handles a GetCustomerHistory query, folding
// the Customer event log into its History view.
type GetCustomerHistoryHandler struct {
	Streamer event.Streamer
	Logger   logger.Logger
}

// Handle implements query.Handler.
func (h GetCustomerHistoryHandler) Handle(
	ctx context.Context,
	q query.Envelope[GetCustomerHistory],
) (customer.History, error) {
	if uuid.UUID(q.Message.ID) == uuid.Nil {
		return customer.History{}, fmt.Errorf("query.GetCustomerHistory: invalid query provided, %w", customer.ErrEmptyID)
	}

	streamID := event.StreamID(q.Message.ID.String())

	events, err := projection.ReadStream(ctx, h.Streamer, streamID)
	if err != nil {
		return customer.History{}, fmt.Errorf("query.GetCustomerHistory: failed to read event stream, %w", err)
	}

	if len(events) == 0 {
		return customer.History{}, fmt.Errorf("query.GetCustomerHistory: %w", aggregate.ErrRootNotFound)
	}

	history, err := customer.ProjectHistory(events)
	if err != nil {
		if errors.Is(err, projection.ErrMissingCreationEvent) {
			logger.Error(h.Logger, "customer event stream has no creation event",
				logger.With("stream_id", string(streamID)),
			)
		}

		return customer.History{}, fmt.Errorf("query.GetCustomerHistory: failed to project history, %w", err)
	}

	return history, nil
}
