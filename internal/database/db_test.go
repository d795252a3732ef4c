package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/screenengine/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx stubs the transaction handle; only Commit and Rollback are wired.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func TestRunInTx_CommitSucceeds(t *testing.T) {
	tx := &fakeTx{}

	err := runInTx(context.Background(), tx, func(pgx.Tx) error { return nil })

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

// A commit that fails must surface to the caller; a silently dropped commit
// error would let registration report success for a user row that never
// committed.
func TestRunInTx_CommitFailureSurfaces(t *testing.T) {
	commitErr := errors.New("connection reset during commit")
	tx := &fakeTx{commitErr: commitErr}

	err := runInTx(context.Background(), tx, func(pgx.Tx) error { return nil })

	require.ErrorIs(t, err, commitErr)
	assert.False(t, tx.rolledBack)
}

func TestRunInTx_FnErrorRollsBack(t *testing.T) {
	fnErr := errors.New("insert failed")
	tx := &fakeTx{}

	err := runInTx(context.Background(), tx, func(pgx.Tx) error { return fnErr })

	require.ErrorIs(t, err, fnErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestRunInTx_PanicRollsBackAndRethrows(t *testing.T) {
	tx := &fakeTx{}

	assert.Panics(t, func() {
		_ = runInTx(context.Background(), tx, func(pgx.Tx) error { panic("boom") })
	})
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestMapPostgresError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows", pgx.ErrNoRows, models.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, models.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, models.ErrConfiguration},
		{"deadline", context.DeadlineExceeded, models.ErrStoreUnavailable},
		{"canceled", context.Canceled, models.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPostgresError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapPostgresError_UnknownErrorUnchanged(t *testing.T) {
	err := errors.New("something else")
	assert.Equal(t, err, MapPostgresError(err))
}
