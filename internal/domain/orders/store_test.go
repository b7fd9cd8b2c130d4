package orders

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE orders`).
		WithArgs(int64(1), "Shipped", 1).
		WillReturnRows(pgxmock.NewRows([]string{"revision", "updated_at"}).AddRow(2, now))

	rev, at, err := repo.UpdateStatus(context.Background(), 1, StatusShipped, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)
	assert.Equal(t, now, at)

	// stale revision on an existing order
	mock.ExpectQuery(`UPDATE orders`).
		WithArgs(int64(1), "Delivered", 1).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, _, err = repo.UpdateStatus(context.Background(), 1, StatusDelivered, 1)
	assert.ErrorIs(t, err, ErrStaleRevision)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// missing order
	mock.ExpectQuery(`UPDATE orders`).
		WithArgs(int64(9), "Shipped", 1).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, _, err = repo.UpdateStatus(context.Background(), 9, StatusShipped, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryHasSellerItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(4), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewRepository(mock).HasSellerItem(context.Background(), 4, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
