package customer

import "time"

// WasCreated is the domain event recorded when a new Customer
// enters the system.
type WasCreated struct {
	ID        ID
	FirstName string
	LastName  string
	Initials  string
	At        time.Time
	By        string
}

// Name implements message.Message.
func (WasCreated) Name() string { return "CustomerCreated" }

// NameWasChanged is the domain event recorded when a Customer
// name is updated.
type NameWasChanged struct {
	FirstName string
	LastName  string
	Initials  string
	At        time.Time
	By        string
}

// Name implements message.Message.
func (NameWasChanged) Name() string { return "CustomerNameChanged" }

// OrderWasAdded is the domain event recorded when an Order
// is attached to a Customer.
type OrderWasAdded struct {
	OrderID OrderID
	At      time.Time
	By      string
}

// Name implements message.Message.
func (OrderWasAdded) Name() string { return "CustomerOrderAdded" }

// WasDeactivated is the domain event recorded when a Customer
// is deactivated.
type WasDeactivated struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasDeactivated) Name() string { return "CustomerDeactivated" }

// WasActivated is the domain event recorded when a previously
// deactivated Customer is activated again.
type WasActivated struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasActivated) Name() string { return "CustomerActivated" }

// WasDeleted is the domain event recorded when a Customer is
// soft-deleted. The event log itself is never erased.
type WasDeleted struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasDeleted) Name() string { return "CustomerDeleted" }
