package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// Subscriber represents a component that gets notified of Domain Events
// after they have been persisted to the Event Store.
type Subscriber interface {
	// Name identifies the Subscriber in dispatch failure reports.
	Name() string

	// Process handles the persisted Domain Event.
	//
	// Process should not assume the event is being delivered exactly once:
	// dispatch is best-effort and may be retried by upstream tooling.
	Process(ctx context.Context, event Persisted) error
}

// SubscriberFunc is a functional implementation of the Subscriber interface.
type SubscriberFunc struct {
	SubscriberName string
	Fn             func(ctx context.Context, event Persisted) error
}

// Name implements event.Subscriber.
func (sf SubscriberFunc) Name() string { return sf.SubscriberName }

// Process implements event.Subscriber.
func (sf SubscriberFunc) Process(ctx context.Context, event Persisted) error {
	return sf.Fn(ctx, event)
}

// DispatchError reports the failure to deliver one persisted Domain Event
// to one Subscriber.
//
// Subscriber is empty when dispatch was abandoned before reaching
// any subscriber (e.g. on context cancellation).
type DispatchError struct {
	Subscriber     string
	StreamID       StreamID
	SequenceNumber version.SequenceNumber
	Err            error
}

func (err DispatchError) Error() string {
	return fmt.Sprintf(
		"event: failed to dispatch event %d of stream '%s' to subscriber '%s': %s",
		err.SequenceNumber, err.StreamID, err.Subscriber, err.Err,
	)
}

func (err DispatchError) Unwrap() error { return err.Err }

// Registry routes persisted Domain Events to the Subscribers registered
// for their event type.
//
// The zero value is not usable, use NewRegistry.
type Registry struct {
	mx     sync.RWMutex
	byName map[string][]Subscriber
	all    []Subscriber
}

// NewRegistry creates a new empty Subscriber registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string][]Subscriber),
	}
}

// Subscribe registers the Subscribers for Domain Events with the specified
// message name.
func (r *Registry) Subscribe(eventName string, subscribers ...Subscriber) {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.byName[eventName] = append(r.byName[eventName], subscribers...)
}

// SubscribeToAll registers the Subscribers for every Domain Event published
// through the registry, regardless of its message name.
func (r *Registry) SubscribeToAll(subscribers ...Subscriber) {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.all = append(r.all, subscribers...)
}

func (r *Registry) subscribersFor(eventName string) []Subscriber {
	r.mx.RLock()
	defer r.mx.RUnlock()

	subscribers := make([]Subscriber, 0, len(r.byName[eventName])+len(r.all))
	subscribers = append(subscribers, r.byName[eventName]...)
	subscribers = append(subscribers, r.all...)

	return subscribers
}

// Publish delivers the persisted Domain Event to every Subscriber registered
// for its message name, plus the catch-all Subscribers.
//
// Subscribers run concurrently and are isolated from one another: a failing
// or slow Subscriber does not prevent delivery to the others. All failures
// are reported back as DispatchError values; an empty return means every
// Subscriber processed the event successfully.
func (r *Registry) Publish(ctx context.Context, event Persisted) []DispatchError {
	subscribers := r.subscribersFor(event.Message.Name())
	if len(subscribers) == 0 {
		return nil
	}

	var (
		wg   sync.WaitGroup
		mx   sync.Mutex
		errs []DispatchError
	)

	for _, subscriber := range subscribers {
		wg.Add(1)

		go func(subscriber Subscriber) {
			defer wg.Done()

			if err := subscriber.Process(ctx, event); err != nil {
				mx.Lock()
				defer mx.Unlock()

				errs = append(errs, DispatchError{
					Subscriber:     subscriber.Name(),
					StreamID:       event.StreamID,
					SequenceNumber: event.SequenceNumber,
					Err:            err,
				})
			}
		}(subscriber)
	}

	wg.Wait()

	return errs
}
