// Package postgres provides an event.Store implementation
// backed by a PostgreSQL database.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
	"github.com/amir-ae/commerce-api-lite-sub001/message"
	"github.com/amir-ae/commerce-api-lite-sub001/serde"
	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

var _ event.Store = EventStore{}

// EventStore is an event.Store implementation targeted to PostgreSQL databases.
//
// The implementation uses "event_streams" and "events" as its
// operational tables. Updates to these tables are transactional.
type EventStore struct {
	Conn  *pgxpool.Pool
	Serde serde.Bytes[message.Message]
}

// Stream implements the event.Streamer interface.
func (es EventStore) Stream(
	ctx context.Context,
	stream event.StreamWrite,
	id event.StreamID,
	selector version.Selector,
) error {
	defer close(stream)

	rows, err := es.Conn.Query(
		ctx,
		`SELECT sequence_number, version, event, metadata FROM events
		WHERE event_stream_id = $1 AND sequence_number >= $2
		ORDER BY sequence_number`,
		id, selector.From,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("postgres.EventStore: failed to query events table: %w", err)
	}

	for rows.Next() {
		var (
			rawEvent    []byte
			rawMetadata json.RawMessage
		)

		evt := event.Persisted{
			StreamID: id,
		}

		if err := rows.Scan(&evt.SequenceNumber, &evt.Version, &rawEvent, &rawMetadata); err != nil {
			return fmt.Errorf("postgres.EventStore: failed to scan next row: %w", err)
		}

		msg, err := es.Serde.Deserialize(rawEvent)
		if err != nil {
			return fmt.Errorf("postgres.EventStore: failed to deserialize event: %w", err)
		}

		evt.Message = msg

		if len(rawMetadata) > 0 {
			if err := json.Unmarshal(rawMetadata, &evt.Metadata); err != nil {
				return fmt.Errorf("postgres.EventStore: failed to deserialize metadata: %w", err)
			}
		}

		select {
		case stream <- evt:
		case <-ctx.Done():
			return fmt.Errorf("postgres.EventStore: context canceled while streaming: %w", ctx.Err())
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres.EventStore: failed while reading rows: %w", err)
	}

	return nil
}

// Append implements event.Appender, persisting a single event batch
// in its own transaction.
func (es EventStore) Append(
	ctx context.Context,
	id event.StreamID,
	expected version.Check,
	events ...event.Envelope,
) (version.Version, error) {
	persisted, err := es.AppendBatch(ctx, event.Batch{
		StreamID: id,
		Expected: expected,
		Events:   events,
	})
	if err != nil || len(persisted) == 0 {
		return 0, err
	}

	return persisted[len(persisted)-1].Version, nil
}

// AppendBatch implements event.BatchAppender.
//
// All batches are persisted in a single database transaction: a version
// check failure on any of the target Event Streams rolls back the whole
// append, and the returned error wraps version.ConflictError.
func (es EventStore) AppendBatch(ctx context.Context, batches ...event.Batch) ([]event.Persisted, error) {
	tx, err := es.Conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres.EventStore: failed to open database transaction: %w", err)
	}

	defer func() {
		// NOTE: should not have effect if the transaction has been committed.
		_ = tx.Rollback(ctx)
	}()

	var persisted []event.Persisted

	for _, batch := range batches {
		events, err := appendBatch(ctx, tx, es.Serde, batch)
		if err != nil {
			if conflictErr, ok := isConflictError(err); ok {
				return nil, fmt.Errorf("postgres.EventStore: failed to append domain events: %w", conflictErr)
			}

			return nil, fmt.Errorf("postgres.EventStore: failed to append domain events: %w", err)
		}

		persisted = append(persisted, events...)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres.EventStore: failed to commit transaction: %w", err)
	}

	return persisted, nil
}
