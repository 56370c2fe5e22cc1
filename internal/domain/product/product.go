// Package product contains the Product aggregate, its domain events
// and the typed projection of its event history.
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
)

// ID is the strongly typed identifier of a Product, usually
// a manufacturer serial number.
type ID string

func (id ID) String() string { return string(id) }

// Type is the Product aggregate type.
var Type = aggregate.Type[ID, *Product]{
	Name:    "Product",
	Factory: func() *Product { return new(Product) },
}

var (
	ErrEmptyID            = errors.New("product.Product: empty id provided")
	ErrEmptyName          = errors.New("product.Product: empty name provided")
	ErrNoOwnerSpecified   = errors.New("product.Product: no owner specified")
	ErrNoActorSpecified   = errors.New("product.Product: no acting user specified")
	ErrSameOwner          = errors.New("product.Product: product already belongs to this owner")
	ErrNotActive          = errors.New("product.Product: product is not active")
	ErrAlreadyActive      = errors.New("product.Product: product is already active")
	ErrAlreadyDeactivated = errors.New("product.Product: product is already deactivated")
	ErrDeleted            = errors.New("product.Product: product is deleted")
)

var _ aggregate.Root[ID] = &Product{}

// Product is the aggregate rooting all state transitions of a single
// product. Current state is a left-fold of its event log.
type Product struct {
	aggregate.BaseRoot

	id    ID
	name  string
	owner customer.ID

	createdAt      time.Time
	createdBy      string
	lastModifiedAt time.Time
	lastModifiedBy string

	isActive  bool
	isDeleted bool
}

// AggregateID implements aggregate.Root.
func (p *Product) AggregateID() ID { return p.id }

func (p *Product) ProductName() string       { return p.name }
func (p *Product) Owner() customer.ID        { return p.owner }
func (p *Product) CreatedAt() time.Time      { return p.createdAt }
func (p *Product) CreatedBy() string         { return p.createdBy }
func (p *Product) LastModifiedAt() time.Time { return p.lastModifiedAt }
func (p *Product) LastModifiedBy() string    { return p.lastModifiedBy }
func (p *Product) IsActive() bool            { return p.isActive }
func (p *Product) IsDeleted() bool           { return p.isDeleted }

// Apply implements aggregate.Aggregate.
func (p *Product) Apply(evt event.Event) error {
	switch evt := evt.(type) {
	case WasCreated:
		p.id = evt.ID
		p.name = evt.ProductName
		p.owner = evt.Owner
		p.createdAt = evt.At
		p.createdBy = evt.By
		p.lastModifiedAt = evt.At
		p.lastModifiedBy = evt.By
		p.isActive = true

	case OwnerWasChanged:
		p.owner = evt.Owner
		p.lastModifiedAt = evt.At
		p.lastModifiedBy = evt.By

	case WasDeactivated:
		p.isActive = false
		p.lastModifiedAt = evt.At
		p.lastModifiedBy = evt.By

	case WasActivated:
		p.isActive = true
		p.lastModifiedAt = evt.At
		p.lastModifiedBy = evt.By

	case WasDeleted:
		p.isDeleted = true
		p.isActive = false
		p.lastModifiedAt = evt.At
		p.lastModifiedBy = evt.By

	default:
		return fmt.Errorf("product.Product.Apply: invalid event, %T", evt)
	}

	return nil
}

// Create records the creation of a new Product, owned by the
// given Customer.
func Create(id ID, name string, owner customer.ID, by string, now time.Time) (*Product, error) {
	wrapErr := func(err error) error {
		return fmt.Errorf("product.Create: failed to create new Product, %w", err)
	}

	if id == "" {
		return nil, wrapErr(ErrEmptyID)
	}

	if strings.TrimSpace(name) == "" {
		return nil, wrapErr(ErrEmptyName)
	}

	if uuid.UUID(owner) == uuid.Nil {
		return nil, wrapErr(ErrNoOwnerSpecified)
	}

	if by == "" {
		return nil, wrapErr(ErrNoActorSpecified)
	}

	var product Product

	if err := aggregate.RecordThat[ID](&product, event.ToEnvelope(WasCreated{
		ID:          id,
		ProductName: name,
		Owner:       owner,
		At:          now,
		By:          by,
	})); err != nil {
		return nil, fmt.Errorf("product.Create: failed to record domain event, %w", err)
	}

	return &product, nil
}

func (p *Product) canBeModified() error {
	if p.isDeleted {
		return ErrDeleted
	}

	if !p.isActive {
		return ErrNotActive
	}

	return nil
}

// ChangeOwner hands the Product over to another Customer.
func (p *Product) ChangeOwner(owner customer.ID, by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("product.ChangeOwner: failed to change Product owner, %w", err)
	}

	if uuid.UUID(owner) == uuid.Nil {
		return wrapErr(ErrNoOwnerSpecified)
	}

	if err := p.canBeModified(); err != nil {
		return wrapErr(err)
	}

	if p.owner == owner {
		return wrapErr(ErrSameOwner)
	}

	if err := aggregate.RecordThat[ID](p, event.ToEnvelope(OwnerWasChanged{
		Owner: owner,
		At:    now,
		By:    by,
	})); err != nil {
		return fmt.Errorf("product.ChangeOwner: failed to record domain event, %w", err)
	}

	return nil
}

// Deactivate marks the Product as inactive.
func (p *Product) Deactivate(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("product.Deactivate: failed to deactivate Product, %w", err)
	}

	if p.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if !p.isActive {
		return wrapErr(ErrAlreadyDeactivated)
	}

	if err := aggregate.RecordThat[ID](p, event.ToEnvelope(WasDeactivated{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("product.Deactivate: failed to record domain event, %w", err)
	}

	return nil
}

// Activate marks a deactivated Product as active again.
func (p *Product) Activate(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("product.Activate: failed to activate Product, %w", err)
	}

	if p.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if p.isActive {
		return wrapErr(ErrAlreadyActive)
	}

	if err := aggregate.RecordThat[ID](p, event.ToEnvelope(WasActivated{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("product.Activate: failed to record domain event, %w", err)
	}

	return nil
}

// Delete soft-deletes the Product.
func (p *Product) Delete(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("product.Delete: failed to delete Product, %w", err)
	}

	if p.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if err := aggregate.RecordThat[ID](p, event.ToEnvelope(WasDeleted{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("product.Delete: failed to record domain event, %w", err)
	}

	return nil
}
