package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/product"
	"github.com/amir-ae/commerce-api-lite-sub001/query"
)

// OrderDetail is the enriched view of an Order attached to a Customer.
type OrderDetail struct {
	OrderID     customer.OrderID
	ProductID   product.ID
	ProductName string
}

// ProductEnricher augments an Order with brief information about the
// Product it refers to. Implementations live outside the core.
type ProductEnricher interface {
	EnrichOrder(ctx context.Context, id customer.OrderID) (OrderDetail, error)
}

// CustomerDetail is the full read view of a Customer, with every
// attached Order enriched with Product information.
type CustomerDetail struct {
	ID             customer.ID
	FirstName      string
	LastName       string
	Initials       string
	Orders         []OrderDetail
	CreatedAt      time.Time
	CreatedBy      string
	LastModifiedAt time.Time
	LastModifiedBy string
	IsActive       bool
	IsDeleted      bool
}

// GetCustomerDetail is a Domain Query used to return the enriched
// view of a Customer.
type GetCustomerDetail struct {
	ID customer.ID
}

// Name implements message.Message.
func (GetCustomerDetail) Name() string { return "GetCustomerDetail" }

const defaultEnrichConcurrency = 8

var _ query.Handler[GetCustomerDetail, CustomerDetail] = GetCustomerDetailHandler{}

// GetCustomerDetailHandler handles a GetCustomerDetail query.
//
// Orders are enriched concurrently with bounded parallelism; the
// resulting list is sorted by Order id, so the response does not
// depend on enrichment completion order.
type GetCustomerDetailHandler struct {
	Getter   customer.Getter
	Enricher ProductEnricher

	// Concurrency limits the number of in-flight enrichment calls.
	// Zero or negative means the default limit.
	Concurrency int
}

// Handle implements query.Handler.
func (h GetCustomerDetailHandler) Handle(
	ctx context.Context,
	q query.Envelope[GetCustomerDetail],
) (CustomerDetail, error) {
	if uuid.UUID(q.Message.ID) == uuid.Nil {
		return CustomerDetail{}, fmt.Errorf("query.GetCustomerDetail: invalid query provided, %w", customer.ErrEmptyID)
	}

	c, err := h.Getter.Get(ctx, q.Message.ID)
	if err != nil {
		return CustomerDetail{}, fmt.Errorf("query.GetCustomerDetail: failed to get Customer from repository, %w", err)
	}

	orders, err := h.enrichOrders(ctx, c.Orders())
	if err != nil {
		return CustomerDetail{}, fmt.Errorf("query.GetCustomerDetail: failed to enrich Customer orders, %w", err)
	}

	return CustomerDetail{
		ID:             c.AggregateID(),
		FirstName:      c.FirstName(),
		LastName:       c.LastName(),
		Initials:       c.Initials(),
		Orders:         orders,
		CreatedAt:      c.CreatedAt(),
		CreatedBy:      c.CreatedBy(),
		LastModifiedAt: c.LastModifiedAt(),
		LastModifiedBy: c.LastModifiedBy(),
		IsActive:       c.IsActive(),
		IsDeleted:      c.IsDeleted(),
	}, nil
}

func (h GetCustomerDetailHandler) enrichOrders(
	ctx context.Context,
	ids []customer.OrderID,
) ([]OrderDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	orders := make([]OrderDetail, len(ids))

	for i, id := range ids {
		group.Go(func() error {
			order, err := h.Enricher.EnrichOrder(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to enrich Order '%s', %w", id, err)
			}

			orders[i] = order

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderID < orders[j].OrderID
	})

	return orders, nil
}
