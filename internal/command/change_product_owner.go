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

// ChangeProductOwner hands an existing Product over to another Customer.
type ChangeProductOwner struct {
	ID    product.ID
	Owner customer.ID
	By    string
}

// Name implements command.Command.
func (ChangeProductOwner) Name() string { return "ChangeProductOwner" }

var _ command.Handler[ChangeProductOwner] = ChangeProductOwnerHandler{}

// ChangeProductOwnerHandler handles ChangeProductOwner commands.
type ChangeProductOwnerHandler struct {
	Clock     func() time.Time
	Products  product.Getter
	Customers customer.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h ChangeProductOwnerHandler) Handle(ctx context.Context, cmd command.Envelope[ChangeProductOwner]) error {
	if _, err := h.Customers.Get(ctx, cmd.Message.Owner); err != nil {
		return fmt.Errorf("command.ChangeProductOwner: failed to get new owning Customer from repository, %w", err)
	}

	p, err := h.Products.Get(ctx, cmd.Message.ID)
	if err != nil {
		return fmt.Errorf("command.ChangeProductOwner: failed to get Product from repository, %w", err)
	}

	if err := p.ChangeOwner(cmd.Message.Owner, cmd.Message.By, h.Clock()); err != nil {
		return fmt.Errorf("command.ChangeProductOwner: failed to change Product owner, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[product.ID](p)); err != nil {
		return fmt.Errorf("command.ChangeProductOwner: failed to commit Product, %w", err)
	}

	return nil
}
