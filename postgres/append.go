package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/message"
	"github.com/amir-ae/commerce-api-lite-sub001/serde"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// appendBatch persists one event batch inside the provided transaction,
// performing the optimistic concurrency check against the current
// Event Stream state.
//
// The stream row is locked for the duration of the transaction, so two
// concurrent commits against the same Event Stream serialize on it and
// the loser observes a version.ConflictError.
func appendBatch(
	ctx context.Context,
	tx pgx.Tx,
	messageSerializer serde.Serializer[message.Message, []byte],
	batch event.Batch,
) ([]event.Persisted, error) {
	if len(batch.Events) == 0 {
		return nil, nil
	}

	row := tx.QueryRow(
		ctx,
		`SELECT version, sequence_number FROM event_streams
		WHERE event_stream_id = $1
		FOR UPDATE`,
		batch.StreamID,
	)

	var (
		oldVersion   version.Version
		lastSequence version.SequenceNumber
	)

	if err := row.Scan(&oldVersion, &lastSequence); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres.appendBatch: failed to scan current event stream state: %w", err)
	}

	if v, ok := batch.Expected.(version.CheckExact); ok && oldVersion != version.Version(v) {
		return nil, version.ConflictError{
			Expected: version.Version(v),
			Actual:   oldVersion,
		}
	}

	newVersion := oldVersion + 1

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO event_streams (event_stream_id, version, sequence_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_stream_id) DO
		UPDATE SET version = $2, sequence_number = $3`,
		batch.StreamID, newVersion, lastSequence+version.SequenceNumber(len(batch.Events)),
	); err != nil {
		return nil, fmt.Errorf("postgres.appendBatch: failed to update event stream: %w", err)
	}

	persisted := make([]event.Persisted, 0, len(batch.Events))

	for i, evt := range batch.Events {
		sequenceNumber := lastSequence + version.SequenceNumber(i) + 1

		if err := appendEvent(ctx, tx, messageSerializer, batch.StreamID, sequenceNumber, newVersion, evt); err != nil {
			return nil, err
		}

		persisted = append(persisted, event.Persisted{
			StreamID:       batch.StreamID,
			Version:        newVersion,
			SequenceNumber: sequenceNumber,
			Envelope:       evt,
		})
	}

	return persisted, nil
}

func appendEvent(
	ctx context.Context,
	tx pgx.Tx,
	messageSerializer serde.Serializer[message.Message, []byte],
	id event.StreamID,
	sequenceNumber version.SequenceNumber,
	newVersion version.Version,
	evt event.Envelope,
) error {
	data, err := messageSerializer.Serialize(evt.Message)
	if err != nil {
		return fmt.Errorf("postgres.appendEvent: failed to serialize domain event: %w", err)
	}

	enrichedMetadata := evt.Metadata.
		With("Recorded-At", time.Now().Format(time.RFC3339Nano)).
		With("Recorded-With-Stream-Version", strconv.Itoa(int(newVersion)))

	metadata, err := json.Marshal(enrichedMetadata)
	if err != nil {
		return fmt.Errorf("postgres.appendEvent: failed to marshal metadata to json: %w", err)
	}

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO events (event_stream_id, sequence_number, "version", "type", event, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, sequenceNumber, newVersion, evt.Message.Name(), data, metadata,
	); err != nil {
		return fmt.Errorf("postgres.appendEvent: failed to append new domain event to event store: %w", err)
	}

	return nil
}
