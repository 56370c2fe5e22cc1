package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
)

// DeactivateCustomer marks an existing Customer as inactive.
type DeactivateCustomer struct {
	ID customer.ID
	By string
}

// Name implements command.Command.
func (DeactivateCustomer) Name() string { return "DeactivateCustomer" }

var _ command.Handler[DeactivateCustomer] = DeactivateCustomerHandler{}

// DeactivateCustomerHandler handles DeactivateCustomer commands.
type DeactivateCustomerHandler struct {
	Clock     func() time.Time
	Getter    customer.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h DeactivateCustomerHandler) Handle(ctx context.Context, cmd command.Envelope[DeactivateCustomer]) error {
	c, err := h.Getter.Get(ctx, cmd.Message.ID)
	if err != nil {
		return fmt.Errorf("command.DeactivateCustomer: failed to get Customer from repository, %w", err)
	}

	if err := c.Deactivate(cmd.Message.By, h.Clock()); err != nil {
		return fmt.Errorf("command.DeactivateCustomer: failed to deactivate Customer, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)); err != nil {
		return fmt.Errorf("command.DeactivateCustomer: failed to commit Customer, %w", err)
	}

	return nil
}
