// Package scenario contains Given/When/Then testing helpers
// to write behavior-driven tests against Aggregate Roots
// and Command Handlers.
package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amir-ae/commerce-api-lite-sub001/aggregate"
	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// AggregateRootInit is the entrypoint of the Aggregate Root scenario API.
//
// An Aggregate Root scenario can either set the current evaluation context
// by using Given(), or test a "clean-slate" scenario by using When() directly.
type AggregateRootInit[I aggregate.ID, T aggregate.Root[I]] struct {
	typ aggregate.Type[I, T]
}

// AggregateRoot is a scenario type to test the result of methods called
// on an Aggregate Root and their effects.
//
// These methods are meant to produce side effects in the Aggregate Root state,
// and thus in the overall system, enforcing the domain invariants represented
// by the Aggregate Root itself.
func AggregateRoot[I aggregate.ID, T aggregate.Root[I]](typ aggregate.Type[I, T]) AggregateRootInit[I, T] {
	return AggregateRootInit[I, T]{
		typ: typ,
	}
}

// Given sets the Aggregate Root scenario preconditions, i.e. the Domain
// Events that have been committed to the Aggregate's Event Stream thus far.
func (sc AggregateRootInit[I, T]) Given(events ...event.Persisted) AggregateRootGiven[I, T] {
	return AggregateRootGiven[I, T]{
		typ:   sc.typ,
		given: events,
	}
}

// When provides the function to evaluate against a clean-slate system,
// typically the Aggregate Root constructor.
func (sc AggregateRootInit[I, T]) When(fn func() (T, error)) AggregateRootWhen[I, T] {
	return AggregateRootWhen[I, T]{
		typ: sc.typ,
		fn:  fn,
	}
}

// AggregateRootGiven is the state of the scenario once a set of Domain Events
// have been provided using Given(), to represent the state of the system
// at the time of evaluation.
type AggregateRootGiven[I aggregate.ID, T aggregate.Root[I]] struct {
	typ   aggregate.Type[I, T]
	given []event.Persisted
}

// When provides the method to evaluate on the rehydrated Aggregate Root.
func (sc AggregateRootGiven[I, T]) When(fn func(T) error) AggregateRootWhen[I, T] {
	return AggregateRootWhen[I, T]{
		typ:   sc.typ,
		given: sc.given,
		fn: func() (T, error) {
			var zeroValue T

			root := sc.typ.Factory()
			eventStream := event.SliceToStream(sc.given)

			if err := aggregate.RehydrateFromEvents[I](root, eventStream); err != nil {
				return zeroValue, err
			}

			if err := fn(root); err != nil {
				return zeroValue, err
			}

			return root, nil
		},
	}
}

// AggregateRootWhen is the state of the scenario once the state of the
// system and the method to evaluate have been provided.
type AggregateRootWhen[I aggregate.ID, T aggregate.Root[I]] struct {
	typ   aggregate.Type[I, T]
	given []event.Persisted
	fn    func() (T, error)
}

// Then sets a positive expectation on the scenario outcome: the expected
// Aggregate Root version after evaluation, and the Domain Events that should
// have been recorded but not yet committed.
//
// Note that recording events does not advance the version, so the expected
// version matches the one of the last Given event (or zero on a clean slate).
func (sc AggregateRootWhen[I, T]) Then(v version.Version, events ...event.Envelope) AggregateRootThen[I, T] {
	return AggregateRootThen[I, T]{
		AggregateRootWhen: sc,
		version:           v,
		expected:          events,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to produce an error value that matches the one provided in input.
//
// Error assertion happens using errors.Is().
func (sc AggregateRootWhen[I, T]) ThenError(err error) AggregateRootThen[I, T] {
	return AggregateRootThen[I, T]{
		AggregateRootWhen: sc,
		wantError:         true,
		expectedError:     err,
	}
}

// ThenFails sets a negative expectation on the scenario outcome,
// with no particular assertion on the error returned.
func (sc AggregateRootWhen[I, T]) ThenFails() AggregateRootThen[I, T] {
	return AggregateRootThen[I, T]{
		AggregateRootWhen: sc,
		wantError:         true,
	}
}

// AggregateRootThen is the state of the scenario once the preconditions
// and expectations have been fully specified.
type AggregateRootThen[I aggregate.ID, T aggregate.Root[I]] struct {
	AggregateRootWhen[I, T]

	version       version.Version
	expected      []event.Envelope
	expectedError error
	wantError     bool
}

// AssertOn performs the specified expectations of the scenario.
func (sc AggregateRootThen[I, T]) AssertOn(t *testing.T) {
	root, err := sc.fn()

	if !sc.wantError {
		assert.NoError(t, err)
		assert.Equal(t, sc.expected, root.FlushRecordedEvents())
		assert.Equal(t, sc.version, root.Version())

		return
	}

	assert.Error(t, err)

	if sc.expectedError != nil {
		assert.ErrorIs(t, err, sc.expectedError)
	}
}
