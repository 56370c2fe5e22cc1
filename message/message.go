// Package message defines the payload contract shared by everything that
// flows through the system: Domain Events, Commands and Queries are all
// Messages routed by their name.
package message

// Message is implemented by any payload that can be routed by its name.
//
// The name doubles as the storage discriminator during serialization,
// so it must be unique within the system and stable across releases.
type Message interface {
	Name() string
}

// Metadata annotates a Message with transport-level context, such as the
// correlation id of the request that produced it.
//
// Metadata never carries functional state: rehydrating an Aggregate Root
// from its Domain Events ignores it entirely.
type Metadata map[string]string

// With returns the Metadata with the value set under the provided key,
// allocating the map when called on a nil Metadata.
func (m Metadata) With(key, value string) Metadata {
	if m == nil {
		m = make(Metadata)
	}

	m[key] = value

	return m
}

// Envelope bundles a Message with the Metadata attached to it.
type Envelope[T Message] struct {
	Message  T
	Metadata Metadata
}

// GenericEnvelope is the Envelope shape used where the concrete Message
// type is not statically known, such as in storage and dispatch code.
type GenericEnvelope = Envelope[Message]
