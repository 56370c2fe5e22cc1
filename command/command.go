// Package command contains the types to represent and handle Domain Commands,
// the requests to mutate the state of the system.
package command

import (
	"context"

	"github.com/amir-ae/commerce-api-lite-sub001/message"
)

// Command is a specific kind of Message that represents an intent
// to mutate the state of the system.
//
// Command names should be phrased in the present, imperative tense.
type Command message.Message

// Envelope carries both a Command and some optional Metadata attached to it.
type Envelope[T Command] message.Envelope[T]

// Handler is the interface that defines a Command Handler,
// a component that receives a specific kind of Command
// and executes the business logic related to that particular Command.
type Handler[T Command] interface {
	Handle(ctx context.Context, cmd Envelope[T]) error
}

// HandlerFunc is a functional type that implements the Handler interface.
// Useful for testing and stateless Handlers.
type HandlerFunc[T Command] func(context.Context, Envelope[T]) error

// Handle handles the provided Command through the functional Handler.
func (fn HandlerFunc[T]) Handle(ctx context.Context, cmd Envelope[T]) error {
	return fn(ctx, cmd)
}

// ToEnvelope is a convenience function that wraps the provided Command type
// into an Envelope, with no metadata attached to it.
func ToEnvelope[T Command](cmd T) Envelope[T] {
	return Envelope[T]{
		Message:  cmd,
		Metadata: nil,
	}
}
