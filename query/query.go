// Package query contains the types to represent and handle Domain Queries,
// the requests for information against the current state of the system.
package query

import (
	"context"

	"github.com/amir-ae/commerce-api-lite-sub001/message"
)

// Query is a specific kind of Message that represents a request for information.
type Query message.Message

// Envelope carries both a Query and some optional Metadata attached to it.
type Envelope[T Query] message.Envelope[T]

// Handler is the interface that defines a Query Handler,
// a component that receives a specific kind of Query and executes it to return
// the desired output.
type Handler[T Query, R any] interface {
	Handle(ctx context.Context, query Envelope[T]) (R, error)
}

// HandlerFunc is a functional type that implements the Handler interface.
// Useful for testing and stateless Handlers.
type HandlerFunc[T Query, R any] func(context.Context, Envelope[T]) (R, error)

// Handle handles the provided Query through the functional Handler.
func (fn HandlerFunc[T, R]) Handle(ctx context.Context, query Envelope[T]) (R, error) {
	return fn(ctx, query)
}

// ToEnvelope is a convenience function that wraps the provided Query type
// into an Envelope, with no metadata attached to it.
func ToEnvelope[T Query](query T) Envelope[T] {
	return Envelope[T]{
		Message:  query,
		Metadata: nil,
	}
}
