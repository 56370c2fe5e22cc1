package customer

import "github.com/amir-ae/commerce-api-lite-sub001/serde"

// RegisterEvents registers every Customer domain event
// with the provided serde registry.
func RegisterEvents(registry *serde.Registry) {
	serde.MustRegisterJSON[WasCreated](registry)
	serde.MustRegisterJSON[NameWasChanged](registry)
	serde.MustRegisterJSON[OrderWasAdded](registry)
	serde.MustRegisterJSON[WasDeactivated](registry)
	serde.MustRegisterJSON[WasActivated](registry)
	serde.MustRegisterJSON[WasDeleted](registry)
}
