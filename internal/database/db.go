package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/screenengine/backend/internal/models"
)

// MapPostgresError translates driver errors into the store-level sentinels.
// Timeouts and connection failures surface as ErrStoreUnavailable so callers
// can treat them as retryable infrastructure faults, not auth failures.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.ErrStoreUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrConflict
		case "23503": // foreign_key_violation
			return models.ErrConfiguration
		}
	}

	if pgconn.Timeout(err) {
		return models.ErrStoreUnavailable
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return models.ErrStoreUnavailable
	}

	return err
}

// WithTransaction runs fn inside a single transaction, rolling back on error
// or panic. Registration relies on this so the user row and its role join
// commit or fail as one unit.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return MapPostgresError(err)
	}
	return runInTx(ctx, tx, fn)
}

// runInTx commits after fn succeeds and rolls back otherwise. The named
// return lets the deferred commit overwrite the result; a failed commit must
// surface to the caller, not report success.
func runInTx(ctx context.Context, tx pgx.Tx, fn func(pgx.Tx) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = MapPostgresError(tx.Commit(ctx))
	}()

	return fn(tx)
}
