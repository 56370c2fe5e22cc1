// Package query contains the read-side operations of the service.
package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
)

// GetCustomer is a Domain Query used to return the current state
// of a Customer.
type GetCustomer struct {
	ID customer.ID
}

// Name implements message.Message.
func (GetCustomer) Name() string { return "GetCustomer" }

var _ query.Handler[GetCustomer, *customer.Customer] = GetCustomerHandler{}

// GetCustomerHandler handles a GetCustomer query, returning the Customer
// aggregate root specified by the query.
type GetCustomerHandler struct {
	Getter customer.Getter
}

// Handle implements query.Handler.
func (h GetCustomerHandler) Handle(ctx context.Context, q query.Envelope[GetCustomer]) (*customer.Customer, error) {
	if uuid.UUID(q.Message.ID) == uuid.Nil {
		return nil, fmt.Errorf("query.GetCustomer: invalid query provided, %w", customer.ErrEmptyID)
	}

	c, err := h.Getter.Get(ctx, q.Message.ID)
	if err != nil {
		return nil, fmt.Errorf("query.GetCustomer: failed to get Customer from repository, %w", err)
	}

	return c, nil
}
