package product

import (
	"time"

	"github.com/amir-ae/commerce-api-lite-sub001/internal/domain/customer"
)

// WasCreated is the domain event recorded when a new Product
// enters the system.
type WasCreated struct {
	ID          ID
	ProductName string
	Owner       customer.ID
	At          time.Time
	By          string
}

// Name implements message.Message.
func (WasCreated) Name() string { return "ProductCreated" }

// OwnerWasChanged is the domain event recorded when a Product
// is handed over to another Customer.
type OwnerWasChanged struct {
	Owner customer.ID
	At    time.Time
	By    string
}

// Name implements message.Message.
func (OwnerWasChanged) Name() string { return "ProductOwnerChanged" }

// WasDeactivated is the domain event recorded when a Product
// is deactivated.
type WasDeactivated struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasDeactivated) Name() string { return "ProductDeactivated" }

// WasActivated is the domain event recorded when a previously
// deactivated Product is activated again.
type WasActivated struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasActivated) Name() string { return "ProductActivated" }

// WasDeleted is the domain event recorded when a Product is
// soft-deleted.
type WasDeleted struct {
	At time.Time
	By string
}

// Name implements message.Message.
func (WasDeleted) Name() string { return "ProductDeleted" }
