package aggregate

import (
	"context"
	"fmt"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/logger"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// CommitTarget binds an Aggregate Root to the Event Stream its recorded
// Domain Events should be committed to. Use aggregate.ToCommit to build one.
type CommitTarget struct {
	streamID event.StreamID
	root     commitRoot
}

// commitRoot is the non-generic view of an Aggregate Root the Committer
// needs: flushing the pending queue and updating the version after a
// successful commit. Embedding aggregate.BaseRoot satisfies it.
type commitRoot interface {
	Internal

	Version() version.Version
	setVersion(version.Version)
}

// ToCommit binds the Aggregate Root to its Event Stream for a Committer.Commit call.
func ToCommit[I ID](root Root[I]) CommitTarget {
	return CommitTarget{
		streamID: event.StreamID(root.AggregateID().String()),
		root:     root,
	}
}

// DispatchFailure is returned by Committer.Commit when the recorded Domain
// Events have been durably persisted, but one or more subscriber dispatches
// failed or were abandoned.
//
// Callers detecting a DispatchFailure with errors.As must treat the write
// itself as applied: only the propagation to subscribers is incomplete.
type DispatchFailure struct {
	Errors []event.DispatchError
}

func (f *DispatchFailure) Error() string {
	return fmt.Sprintf(
		"aggregate: events persisted, but %d dispatch(es) to subscribers failed",
		len(f.Errors),
	)
}

// Committer is the unit-of-work boundary of a logical write operation:
// it persists the Domain Events recorded by every Aggregate Root touched
// within the operation, then broadcasts them to the registered subscribers.
//
// Persistence is strongly consistent and atomic across all targets;
// propagation to subscribers is best-effort and independently observable
// through DispatchFailure.
type Committer struct {
	Store    event.BatchAppender
	Registry *event.Registry

	// Scope, if set, is cleared exactly once after every durable commit.
	Scope *Scope

	// Logger, if set, reports dispatch failures.
	Logger logger.Logger
}

// Commit flushes the pending Domain Events of the provided targets,
// persists them in a single atomic transaction, and dispatches each
// persisted event, in per-aggregate recording order, to the subscribers
// registered for its type. No dispatch ordering is guaranteed across
// different targets.
//
// On a version conflict nothing is persisted or dispatched: the returned
// error wraps version.ConflictError, and the caller must retry from a
// freshly loaded Aggregate Root, since the pending queues have already
// been flushed.
//
// Cancellation is honored only before persistence begins; once the commit
// is durable, cancellation abandons the remaining dispatches and is
// surfaced through DispatchFailure.
func (c Committer) Commit(ctx context.Context, targets ...CommitTarget) error {
	type flushedTarget struct {
		CommitTarget
		events []event.Envelope
	}

	var (
		batches []event.Batch
		flushed []flushedTarget
	)

	for _, target := range targets {
		events := target.root.FlushRecordedEvents()
		if len(events) == 0 {
			continue
		}

		batches = append(batches, event.Batch{
			StreamID: target.streamID,
			Expected: version.CheckExact(target.root.Version()),
			Events:   events,
		})

		flushed = append(flushed, flushedTarget{CommitTarget: target, events: events})
	}

	if len(batches) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("aggregate.Committer: commit canceled before persistence: %w", err)
	}

	// The store must not observe a mid-transaction cancellation:
	// once persistence starts, it either completes or fails on its own terms.
	persisted, err := c.Store.AppendBatch(context.WithoutCancel(ctx), batches...)
	if err != nil {
		return fmt.Errorf("aggregate.Committer: failed to persist recorded events: %w", err)
	}

	byStream := make(map[event.StreamID]version.Version, len(persisted))
	for _, evt := range persisted {
		byStream[evt.StreamID] = evt.Version
	}

	for _, target := range flushed {
		target.root.setVersion(byStream[target.streamID])
	}

	if c.Scope != nil {
		c.Scope.ClearAll()
	}

	if failure := c.dispatch(ctx, persisted); failure != nil {
		return fmt.Errorf("aggregate.Committer: commit is durable, dispatch incomplete: %w", failure)
	}

	return nil
}

func (c Committer) dispatch(ctx context.Context, persisted []event.Persisted) *DispatchFailure {
	if c.Registry == nil {
		return nil
	}

	var dispatchErrs []event.DispatchError

	for _, evt := range persisted {
		if err := ctx.Err(); err != nil {
			dispatchErrs = append(dispatchErrs, event.DispatchError{
				StreamID:       evt.StreamID,
				SequenceNumber: evt.SequenceNumber,
				Err:            err,
			})

			break
		}

		dispatchErrs = append(dispatchErrs, c.Registry.Publish(ctx, evt)...)
	}

	if len(dispatchErrs) == 0 {
		return nil
	}

	for _, dispatchErr := range dispatchErrs {
		logger.Error(c.Logger, "event dispatch failed",
			logger.With("subscriber", dispatchErr.Subscriber),
			logger.With("stream_id", string(dispatchErr.StreamID)),
			logger.With("sequence_number", dispatchErr.SequenceNumber),
			logger.With("error", dispatchErr.Err),
		)
	}

	return &DispatchFailure{Errors: dispatchErrs}
}
