// Package projection provides the building blocks to derive read-oriented
// views from Event Streams.
//
// Typed event histories are built per Aggregate by an exhaustive type switch
// over the closed set of Domain Event kinds the Aggregate can emit: each kind
// is bound to a named, log-ordered bucket, the creation event is held out as
// a distinguished scalar, and unknown kinds (e.g. written by a newer schema
// version) are skipped. See the ProjectHistory functions in the domain
// packages for the concrete groupings.
package projection

import (
	"context"
	"errors"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// ErrMissingCreationEvent is returned when projecting an Event Stream that
// contains no creation event.
//
// An Event Stream always starts with its Aggregate's creation event, so this
// condition indicates log corruption: it is fatal and must not be retried.
var ErrMissingCreationEvent = errors.New("projection: event stream has no creation event")

// ReadStream drains the Event Stream with the specified id into an ordered
// slice of persisted Domain Events, from the beginning of the stream.
func ReadStream(ctx context.Context, streamer event.Streamer, id event.StreamID) ([]event.Persisted, error) {
	return event.StreamToSlice(ctx, func(ctx context.Context, stream event.StreamWrite) error {
		return streamer.Stream(ctx, stream, id, version.SelectFromBeginning)
	})
}
