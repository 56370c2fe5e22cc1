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

// CreateProduct registers a new Product, owned by an existing Customer.
type CreateProduct struct {
	ID          product.ID
	ProductName string
	Owner       customer.ID
	By          string
}

// Name implements command.Command.
func (CreateProduct) Name() string { return "CreateProduct" }

var _ command.Handler[CreateProduct] = CreateProductHandler{}

// CreateProductHandler handles CreateProduct commands.
type CreateProductHandler struct {
	Clock     func() time.Time
	Customers customer.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h CreateProductHandler) Handle(ctx context.Context, cmd command.Envelope[CreateProduct]) error {
	if _, err := h.Customers.Get(ctx, cmd.Message.Owner); err != nil {
		return fmt.Errorf("command.CreateProduct: failed to get owning Customer from repository, %w", err)
	}

	p, err := product.Create(
		cmd.Message.ID,
		cmd.Message.ProductName,
		cmd.Message.Owner,
		cmd.Message.By,
		h.Clock(),
	)
	if err != nil {
		return fmt.Errorf("command.CreateProduct: failed to create Product, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[product.ID](p)); err != nil {
		return fmt.Errorf("command.CreateProduct: failed to commit new Product, %w", err)
	}

	return nil
}
