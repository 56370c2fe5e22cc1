// Package version provides the types used for optimistic concurrency
// control over Event Streams.
package version

// Version is the type used to specify Event Stream versions.
//
// A Version counts the number of event batches successfully committed
// to an Event Stream: it advances by exactly one for each commit,
// no matter how many Domain Events the committed batch contains.
type Version uint32

// SequenceNumber is the type used to order Domain Events within
// an Event Stream. Sequence numbers start from 1 and are gap-free.
type SequenceNumber uint64

// SelectFromBeginning is a Selector value that will return all Domain Events
// in an Event Stream.
var SelectFromBeginning = Selector{From: 0}

// Selector specifies which slice of the Event Stream to select when streaming
// Domain Events from the Event Store.
type Selector struct {
	From SequenceNumber
}
