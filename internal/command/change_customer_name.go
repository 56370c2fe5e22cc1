package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
)

// ChangeCustomerName updates the name of an existing Customer.
type ChangeCustomerName struct {
	ID        customer.ID
	FirstName string
	LastName  string
	By        string
}

// Name implements command.Command.
func (ChangeCustomerName) Name() string { return "ChangeCustomerName" }

var _ command.Handler[ChangeCustomerName] = ChangeCustomerNameHandler{}

// ChangeCustomerNameHandler handles ChangeCustomerName commands.
type ChangeCustomerNameHandler struct {
	Clock     func() time.Time
	Getter    customer.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h ChangeCustomerNameHandler) Handle(ctx context.Context, cmd command.Envelope[ChangeCustomerName]) error {
	c, err := h.Getter.Get(ctx, cmd.Message.ID)
	if err != nil {
		return fmt.Errorf("command.ChangeCustomerName: failed to get Customer from repository, %w", err)
	}

	if err := c.ChangeName(cmd.Message.FirstName, cmd.Message.LastName, cmd.Message.By, h.Clock()); err != nil {
		return fmt.Errorf("command.ChangeCustomerName: failed to change Customer name, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[customer.ID](c)); err != nil {
		return fmt.Errorf("command.ChangeCustomerName: failed to commit Customer, %w", err)
	}

	return nil
}
