package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
)

// PlaceOrder records a Customer buying a Product: the Order is attached
// to the Customer and the Product is handed over to them. Both aggregates
// are committed in a single unit of work.
type PlaceOrder struct {
	OrderID    customer.OrderID
	CustomerID customer.ID
	ProductID  product.ID
	By         string
}

// Name implements command.Command.
func (PlaceOrder) Name() string { return "PlaceOrder" }

var _ command.Handler[PlaceOrder] = PlaceOrderHandler{}

// PlaceOrderHandler handles PlaceOrder commands.
type PlaceOrderHandler struct {
	Clock     func() time.Time
	Customers customer.Getter
	Products  product.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h PlaceOrderHandler) Handle(ctx context.Context, cmd command.Envelope[PlaceOrder]) error {
	c, err := h.Customers.Get(ctx, cmd.Message.CustomerID)
	if err != nil {
		return fmt.Errorf("command.PlaceOrder: failed to get Customer from repository, %w", err)
	}

	p, err := h.Products.Get(ctx, cmd.Message.ProductID)
	if err != nil {
		return fmt.Errorf("command.PlaceOrder: failed to get Product from repository, %w", err)
	}

	now := h.Clock()

	if err := c.AddOrder(cmd.Message.OrderID, cmd.Message.By, now); err != nil {
		return fmt.Errorf("command.PlaceOrder: failed to add Order to Customer, %w", err)
	}

	if err := p.ChangeOwner(cmd.Message.CustomerID, cmd.Message.By, now); err != nil {
		return fmt.Errorf("command.PlaceOrder: failed to change Product owner, %w", err)
	}

	if err := h.Committer.Commit(
		ctx,
		aggregate.ToCommit[customer.ID](c),
		aggregate.ToCommit[product.ID](p),
	); err != nil {
		return fmt.Errorf("command.PlaceOrder: failed to commit Customer and Product, %w", err)
	}

	return nil
}
