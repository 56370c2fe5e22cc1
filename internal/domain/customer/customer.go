// Package customer contains the Customer aggregate, its domain events
// and the typed projection of its event history.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
)

// ID is the strongly typed identifier of a Customer.
type ID uuid.UUID

func (id ID) String() string { return uuid.UUID(id).String() }

// MarshalText implements encoding.TextMarshaler, so that identifiers
// serialize as their canonical string form.
func (id ID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("customer.ID: failed to unmarshal, %w", err)
	}

	*id = ID(parsed)

	return nil
}

// NewID returns a new random Customer identifier.
func NewID() ID { return ID(uuid.New()) }

// ParseID parses a Customer identifier from its string form.
func ParseID(s string) (ID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("customer.ParseID: invalid id, %w", err)
	}

	return ID(parsed), nil
}

// OrderID is the strongly typed identifier of an Order attached
// to a Customer.
type OrderID string

func (id OrderID) String() string { return string(id) }

// Type is the Customer aggregate type.
var Type = aggregate.Type[ID, *Customer]{
	Name:    "Customer",
	Factory: func() *Customer { return new(Customer) },
}

var (
	ErrEmptyID            = errors.New("customer.Customer: empty id provided")
	ErrEmptyFirstName     = errors.New("customer.Customer: empty first name provided")
	ErrEmptyLastName      = errors.New("customer.Customer: empty last name provided")
	ErrNoActorSpecified   = errors.New("customer.Customer: no acting user specified")
	ErrEmptyOrderID       = errors.New("customer.Customer: empty order id provided")
	ErrOrderAlreadyAdded  = errors.New("customer.Customer: order was already added")
	ErrNotActive          = errors.New("customer.Customer: customer is not active")
	ErrAlreadyActive      = errors.New("customer.Customer: customer is already active")
	ErrAlreadyDeactivated = errors.New("customer.Customer: customer is already deactivated")
	ErrDeleted            = errors.New("customer.Customer: customer is deleted")
)

var _ aggregate.Root[ID] = &Customer{}

// Customer is the aggregate rooting all state transitions of a single
// customer. Current state is a left-fold of its event log.
type Customer struct {
	aggregate.BaseRoot

	id        ID
	firstName string
	lastName  string
	initials  string
	orders    []OrderID

	createdAt      time.Time
	createdBy      string
	lastModifiedAt time.Time
	lastModifiedBy string

	isActive  bool
	isDeleted bool
}

// AggregateID implements aggregate.Root.
func (c *Customer) AggregateID() ID { return c.id }

func (c *Customer) FirstName() string         { return c.firstName }
func (c *Customer) LastName() string          { return c.lastName }
func (c *Customer) Initials() string          { return c.initials }
func (c *Customer) Orders() []OrderID         { return append([]OrderID(nil), c.orders...) }
func (c *Customer) CreatedAt() time.Time      { return c.createdAt }
func (c *Customer) CreatedBy() string         { return c.createdBy }
func (c *Customer) LastModifiedAt() time.Time { return c.lastModifiedAt }
func (c *Customer) LastModifiedBy() string    { return c.lastModifiedBy }
func (c *Customer) IsActive() bool            { return c.isActive }
func (c *Customer) IsDeleted() bool           { return c.isDeleted }

// Apply implements aggregate.Aggregate.
func (c *Customer) Apply(evt event.Event) error {
	switch evt := evt.(type) {
	case WasCreated:
		c.id = evt.ID
		c.firstName = evt.FirstName
		c.lastName = evt.LastName
		c.initials = evt.Initials
		c.createdAt = evt.At
		c.createdBy = evt.By
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By
		c.isActive = true

	case NameWasChanged:
		c.firstName = evt.FirstName
		c.lastName = evt.LastName
		c.initials = evt.Initials
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By

	case OrderWasAdded:
		c.orders = append(c.orders, evt.OrderID)
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By

	case WasDeactivated:
		c.isActive = false
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By

	case WasActivated:
		c.isActive = true
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By

	case WasDeleted:
		c.isDeleted = true
		c.isActive = false
		c.lastModifiedAt = evt.At
		c.lastModifiedBy = evt.By

	default:
		return fmt.Errorf("customer.Customer.Apply: invalid event, %T", evt)
	}

	return nil
}

// Initials normalizes the given first name into dotted initials,
// e.g. "A" and "Anna" both yield "A.".
func Initials(firstName string) string {
	parts := strings.Fields(firstName)
	initials := make([]string, 0, len(parts))

	for _, part := range parts {
		r := []rune(part)[0]
		initials = append(initials, string(unicode.ToUpper(r))+".")
	}

	return strings.Join(initials, " ")
}

// Create records the creation of a new Customer.
func Create(id ID, firstName, lastName, by string, now time.Time) (*Customer, error) {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.Create: failed to create new Customer, %w", err)
	}

	if uuid.UUID(id) == uuid.Nil {
		return nil, wrapErr(ErrEmptyID)
	}

	if strings.TrimSpace(firstName) == "" {
		return nil, wrapErr(ErrEmptyFirstName)
	}

	if strings.TrimSpace(lastName) == "" {
		return nil, wrapErr(ErrEmptyLastName)
	}

	if by == "" {
		return nil, wrapErr(ErrNoActorSpecified)
	}

	var customer Customer

	if err := aggregate.RecordThat[ID](&customer, event.ToEnvelope(WasCreated{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Initials:  Initials(firstName),
		At:        now,
		By:        by,
	})); err != nil {
		return nil, fmt.Errorf("customer.Create: failed to record domain event, %w", err)
	}

	return &customer, nil
}

func (c *Customer) canBeModified() error {
	if c.isDeleted {
		return ErrDeleted
	}

	if !c.isActive {
		return ErrNotActive
	}

	return nil
}

// ChangeName updates the Customer name, re-deriving the initials.
func (c *Customer) ChangeName(firstName, lastName, by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.ChangeName: failed to change Customer name, %w", err)
	}

	if strings.TrimSpace(firstName) == "" {
		return wrapErr(ErrEmptyFirstName)
	}

	if strings.TrimSpace(lastName) == "" {
		return wrapErr(ErrEmptyLastName)
	}

	if err := c.canBeModified(); err != nil {
		return wrapErr(err)
	}

	if err := aggregate.RecordThat[ID](c, event.ToEnvelope(NameWasChanged{
		FirstName: firstName,
		LastName:  lastName,
		Initials:  Initials(firstName),
		At:        now,
		By:        by,
	})); err != nil {
		return fmt.Errorf("customer.ChangeName: failed to record domain event, %w", err)
	}

	return nil
}

// AddOrder attaches a new Order to the Customer.
func (c *Customer) AddOrder(orderID OrderID, by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.AddOrder: failed to add Order to Customer, %w", err)
	}

	if orderID == "" {
		return wrapErr(ErrEmptyOrderID)
	}

	if err := c.canBeModified(); err != nil {
		return wrapErr(err)
	}

	for _, id := range c.orders {
		if id == orderID {
			return wrapErr(ErrOrderAlreadyAdded)
		}
	}

	if err := aggregate.RecordThat[ID](c, event.ToEnvelope(OrderWasAdded{
		OrderID: orderID,
		At:      now,
		By:      by,
	})); err != nil {
		return fmt.Errorf("customer.AddOrder: failed to record domain event, %w", err)
	}

	return nil
}

// Deactivate marks the Customer as inactive. Inactive Customers
// reject further mutations until activated again.
func (c *Customer) Deactivate(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.Deactivate: failed to deactivate Customer, %w", err)
	}

	if c.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if !c.isActive {
		return wrapErr(ErrAlreadyDeactivated)
	}

	if err := aggregate.RecordThat[ID](c, event.ToEnvelope(WasDeactivated{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("customer.Deactivate: failed to record domain event, %w", err)
	}

	return nil
}

// Activate marks a deactivated Customer as active again.
func (c *Customer) Activate(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.Activate: failed to activate Customer, %w", err)
	}

	if c.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if c.isActive {
		return wrapErr(ErrAlreadyActive)
	}

	if err := aggregate.RecordThat[ID](c, event.ToEnvelope(WasActivated{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("customer.Activate: failed to record domain event, %w", err)
	}

	return nil
}

// Delete soft-deletes the Customer. The event log is append-only,
// so deletion is itself just another recorded event.
func (c *Customer) Delete(by string, now time.Time) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("customer.Delete: failed to delete Customer, %w", err)
	}

	if c.isDeleted {
		return wrapErr(ErrDeleted)
	}

	if err := aggregate.RecordThat[ID](c, event.ToEnvelope(WasDeleted{
		At: now,
		By: by,
	})); err != nil {
		return fmt.Errorf("customer.Delete: failed to record domain event, %w", err)
	}

	return nil
}
