package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
	"github.com/amir-ae/commerce-api-lite-sub001/logger"
	"github.com/amir-ae/commerce-api-lite-sub001/projection"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
)

// GetProductHistory is a Domain Query used to return the typed event
// history of a Product.
type GetProductHistory struct {
	ID product.ID
}

// Name implements message.Message.
func (GetProductHistory) Name() string { return "GetProductHistory" }

var _ query.Handler[GetProductHistory, product.History] = GetProductHistoryHandler{}

// GetProductHistoryHandler handles a GetProductHistory query, folding
// the Product event log into its History view.
type GetProductHistoryHandler struct {
	Streamer event.Streamer
	Logger   logger.Logger
}

// Handle implements query.Handler.
func (h GetProductHistoryHandler) Handle(
	ctx context.Context,
	q query.Envelope[GetProductHistory],
) (product.History, error) {
	if q.Message.ID == "" {
		return product.History{}, fmt.Errorf("query.GetProductHistory: invalid query provided, %w", product.ErrEmptyID)
	}

	streamID := event.StreamID(q.Message.ID.String())

	events, err := projection.ReadStream(ctx, h.Streamer, streamID)
	if err != nil {
		return product.History{}, fmt.Errorf("query.GetProductHistory: failed to read event stream, %w", err)
	}

	if len(events) == 0 {
		return product.History{}, fmt.Errorf("query.GetProductHistory: %w", aggregate.ErrRootNotFound)
	}

	history, err := product.ProjectHistory(events)
	if err != nil {
		if errors.Is(err, projection.ErrMissingCreationEvent) {
			logger.Error(h.Logger, "product event stream has no creation event",
				logger.With("stream_id", string(streamID)),
			)
		}

		return product.History{}, fmt.Errorf("query.GetProductHistory: failed to project history, %w", err)
	}

	return history, nil
}
