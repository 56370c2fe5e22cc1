package product

import "github.com/amir-ae/commerce-api-lite-sub001/serde"

// RegisterEvents registers every Product domain event
// with the provided serde registry.
func RegisterEvents(registry *serde.Registry) {
	serde.MustRegisterJSON[WasCreated](registry)
	serde.MustRegisterJSON[OwnerWasChanged](registry)
	serde.MustRegisterJSON[WasDeactivated](registry)
	serde.MustRegisterJSON[WasActivated](registry)
	serde.MustRegisterJSON[WasDeleted](registry)
}
