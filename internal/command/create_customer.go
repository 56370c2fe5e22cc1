// Package command contains the write-side operations of the service.
//
// Each handler loads the Aggregate Roots it needs, applies the domain
// mutation and hands every touched root to the Committer in a single
// unit of work.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
)

// CreateCustomer registers a new Customer.
type CreateCustomer struct {
	ID        customer.ID
	FirstName string
	LastName  string
	By        string
}

// Name implements command.Command.
func (CreateCustomer) Name() string { return "CreateCustomer" }

var _ command.Handler[CreateCustomer] = CreateCustomerHandler{}

// CreateCustomerHandler handles CreateCustomer commands.
type CreateCustomerHandler struct {
	Clock     func() time.Time
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h CreateCustomerHandler) Handle(ctx context.Context, cmd command.Envelope[CreateCustomer]) error {
	c, err := customer.Create(
		cmd.Message.ID,
		cmd.Message.FirstName,
		cmd.Message.LastName,
		cmd.Message.By,
		h.Clock(),
	)
	if err != nil {
		return fmt.Errorf("command.CreateCustomer: failed to create Customer, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)); err != nil {
		return fmt.Errorf("command.CreateCustomer: failed to commit new Customer, %w", err)
	}

	return nil
}
