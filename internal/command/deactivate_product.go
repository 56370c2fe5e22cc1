package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/command"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
)

// DeactivateProduct marks an existing Product as inactive.
type DeactivateProduct struct {
	ID product.ID
	By string
}

// Name implements command.Command.
func (DeactivateProduct) Name() string { return "DeactivateProduct" }

var _ command.Handler[DeactivateProduct] = DeactivateProductHandler{}

// DeactivateProductHandler handles DeactivateProduct commands.
type DeactivateProductHandler struct {
	Clock     func() time.Time
	Getter    product.Getter
	Committer aggregate.Committer
}

// Handle implements command.Handler.
func (h DeactivateProductHandler) Handle(ctx context.Context, cmd command.Envelope[DeactivateProduct]) error {
	p, err := h.Getter.Get(ctx, cmd.Message.ID)
	if err != nil {
		return fmt.Errorf("command.DeactivateProduct: failed to get Product from repository, %w", err)
	}

	if err := p.Deactivate(cmd.Message.By, h.Clock()); err != nil {
		return fmt.Errorf("command.DeactivateProduct: failed to deactivate Product, %w", err)
	}

	if err := h.Committer.Commit(ctx, aggregate.ToCommit[product.ID](p)); err != nil {
		return fmt.Errorf("command.DeactivateProduct: failed to commit Product, %w", err)
	}

	return nil
}
