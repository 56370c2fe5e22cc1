// Package otelstore provides OpenTelemetry instrumentation (metrics and
// traces) for event.Store implementations.
package otelstore

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// Attribute keys used by the EventStore instrumentation.
const (
	EventStreamIDKey               attribute.Key = "event_stream.id"
	EventStreamSequenceSelectorKey attribute.Key = "event_stream.select_from_sequence_number"
	EventStreamExpectedVersionKey  attribute.Key = "event_stream.expected_version"
	EventStoreNumEventsKey         attribute.Key = "event_store.num_events"
	EventStoreNumBatchesKey        attribute.Key = "event_store.num_batches"
	ErrorKey                       attribute.Key = "error"
)

var _ event.Store = &EventStore{}

// EventStore is a wrapper type over an event.Store
// instance to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Use WrapEventStore for constructing a new instance of this type.
type EventStore struct {
	eventStore event.Store

	tracer         trace.Tracer
	streamDuration metric.Int64Histogram
	appendDuration metric.Int64Histogram
}

func (es *EventStore) registerMetrics(meter metric.Meter) error {
	var err error

	if es.streamDuration, err = meter.Int64Histogram(
		"commerce.event_store.stream.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of event.Store.Stream operations performed."),
	); err != nil {
		return fmt.Errorf("otelstore.EventStore: failed to register metric: %w", err)
	}

	if es.appendDuration, err = meter.Int64Histogram(
		"commerce.event_store.append.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of event.Store append operations performed."),
	); err != nil {
		return fmt.Errorf("otelstore.EventStore: failed to register metric: %w", err)
	}

	return nil
}

// WrapEventStore returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around an event.Store.
//
// An error is returned if metrics could not be registered.
func WrapEventStore(eventStore event.Store, options ...Option) (*EventStore, error) {
	cfg := newConfig(options...)

	es := &EventStore{
		eventStore: eventStore,
		tracer:     cfg.tracer(),
	}

	if err := es.registerMetrics(cfg.meter()); err != nil {
		return nil, err
	}

	return es, nil
}

// Stream calls the wrapped event.Store.Stream method and records metrics and traces around it.
func (es *EventStore) Stream(
	ctx context.Context,
	stream event.StreamWrite,
	id event.StreamID,
	selector version.Selector,
) (err error) {
	attributes := []attribute.KeyValue{
		EventStreamIDKey.String(string(id)),
		EventStreamSequenceSelectorKey.Int64(int64(selector.From)),
	}

	ctx, span := es.tracer.Start(ctx, "event.Store.Stream", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		duration := time.Since(start)
		es.streamDuration.Record(ctx, duration.Milliseconds(),
			metric.WithAttributes(ErrorKey.Bool(err != nil)))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	err = es.eventStore.Stream(ctx, stream, id, selector)

	return
}

// Append calls the wrapped event.Store.Append method and records metrics and traces around it.
func (es *EventStore) Append(
	ctx context.Context,
	id event.StreamID,
	expected version.Check,
	events ...event.Envelope,
) (newVersion version.Version, err error) {
	expectedVersion := int64(-1)
	if v, ok := expected.(version.CheckExact); ok {
		expectedVersion = int64(v)
	}

	attributes := []attribute.KeyValue{
		EventStreamIDKey.String(string(id)),
		EventStreamExpectedVersionKey.Int64(expectedVersion),
		EventStoreNumEventsKey.Int(len(events)),
	}

	ctx, span := es.tracer.Start(ctx, "event.Store.Append", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		duration := time.Since(start)
		es.appendDuration.Record(ctx, duration.Milliseconds(),
			metric.WithAttributes(ErrorKey.Bool(err != nil)))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	newVersion, err = es.eventStore.Append(ctx, id, expected, events...)

	return
}

// AppendBatch calls the wrapped event.Store.AppendBatch method and records
// metrics and traces around it.
func (es *EventStore) AppendBatch(
	ctx context.Context,
	batches ...event.Batch,
) (persisted []event.Persisted, err error) {
	numEvents := 0
	for _, batch := range batches {
		numEvents += len(batch.Events)
	}

	attributes := []attribute.KeyValue{
		EventStoreNumBatchesKey.Int(len(batches)),
		EventStoreNumEventsKey.Int(numEvents),
	}

	ctx, span := es.tracer.Start(ctx, "event.Store.AppendBatch", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		duration := time.Since(start)
		es.appendDuration.Record(ctx, duration.Milliseconds(),
			metric.WithAttributes(ErrorKey.Bool(err != nil)))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	persisted, err = es.eventStore.AppendBatch(ctx, batches...)

	return
}
