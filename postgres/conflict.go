package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amir-ae/commerce-api-lite-sub001/version"
)

// isConflictError reports whether the error maps to an optimistic
// concurrency conflict.
//
// Besides explicit version.ConflictError values, a unique violation on the
// events primary key is also treated as a conflict: two transactions racing
// on a brand new Event Stream can both observe the empty stream and collide
// on the first sequence number.
func isConflictError(err error) (version.ConflictError, bool) {
	var conflictErr version.ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return version.ConflictError{}, true
	}

	return version.ConflictError{}, false
}
