package customer

import (
	"fmt"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/projection"
)

// History is the typed view of a Customer event log: the creation
// event held out as a scalar, every other kind grouped in its own
// bucket, log order preserved.
type History struct {
	Created       WasCreated
	NameChanges   []NameWasChanged
	OrdersAdded   []OrderWasAdded
	Deactivations []WasDeactivated
	Activations   []WasActivated
	Deletions     []WasDeleted
}

// ProjectHistory folds a Customer event log into its History view.
//
// A log with no creation event is corrupt and yields
// projection.ErrMissingCreationEvent. Event kinds outside the
// Customer set are skipped, so logs written by a newer schema
// still project.
func ProjectHistory(events []event.Persisted) (History, error) {
	var (
		history History
		created bool
	)

	for _, evt := range events {
		switch evt := evt.Message.(type) {
		case WasCreated:
			if !created {
				history.Created = evt
				created = true
			}

		case NameWasChanged:
			history.NameChanges = append(history.NameChanges, evt)

		case OrderWasAdded:
			history.OrdersAdded = append(history.OrdersAdded, evt)

		case WasDeactivated:
			history.Deactivations = append(history.Deactivations, evt)

		case WasActivated:
			history.Activations = append(history.Activations, evt)

		case WasDeleted:
			history.Deletions = append(history.Deletions, evt)
		}
	}

	if !created {
		return History{}, fmt.Errorf("customer.ProjectHistory: %w", projection.ErrMissingCreationEvent)
	}

	return history, nil
}
