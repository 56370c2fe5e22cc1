package query

import (
	"context"
	"fmt"

	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
)

// GetProduct is a Domain Query used to return the current state
// of a Product.
type GetProduct struct {
	ID product.ID
}

// Name implements message.Message.
func (GetProduct) Name() string { return "GetProduct" }

var _ query.Handler[GetProduct, *product.Product] = GetProductHandler{}

// GetProductHandler handles a GetProduct query, returning the Product
// aggregate root specified by the query.
type GetProductHandler struct {
	Getter product.Getter
}

// Handle implements query.Handler.
func (h GetProductHandler) Handle(ctx context.Context, q query.Envelope[GetProduct]) (*product.Product, error) {
	if q.Message.ID == "" {
		return nil, fmt.Errorf("query.GetProduct: invalid query provided, %w", product.ErrEmptyID)
	}

	p, err := h.Getter.Get(ctx, q.Message.ID)
	if err != nil {
		return nil, fmt.Errorf("query.GetProduct: failed to get Product from repository, %w", err)
	}

	return p, nil
}
