// Package event contains the types to describe, persist and publish
// Domain Events, the immutable facts the system records as its source
// of truth.
package event

import (
	"github.com/amir-ae/commerce-api-lite-sub001/message"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// Event is a Message representing some Domain information that has happened
// in the past, which is of vital information to the Domain itself.
//
// Event type names should be phrased in the past tense, to enforce the notion
// of "information happened in the past".
type Event message.Message

// StreamID is the unique identifier of an Event Stream, i.e. the ordered
// event log of a single Aggregate instance.
type StreamID string

// Envelope bundles a Domain Event with optional Metadata attached to it.
type Envelope message.GenericEnvelope

// ToEnvelope returns an Envelope instance with the provided Event
// and no Metadata.
func ToEnvelope(event Event) Envelope {
	return Envelope{
		Message: event,
	}
}

// Persisted represents a Domain Event that has been persisted into the Event Store.
//
// Version is the Event Stream version of the commit that recorded the event;
// all events committed in the same batch share it. SequenceNumber is the
// gap-free position of the event in its Event Stream.
type Persisted struct {
	StreamID       StreamID
	Version        version.Version
	SequenceNumber version.SequenceNumber
	Envelope
}
