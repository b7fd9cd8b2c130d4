package inbox

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/apperr"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("order_update")
	require.NoError(t, err)
	assert.Equal(t, CategoryOrderUpdate, c)

	_, err = ParseCategory("promo")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestRepositoryListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "recipient_account_id", "category", "message", "link", "is_read", "created_at"}).
		AddRow(int64(2), int64(7), "order_update", "second", "/x", false, at.Add(time.Minute)).
		AddRow(int64(1), int64(7), "order_update", "first", "/x", true, at)
	mock.ExpectQuery(`FROM notifications`).
		WithArgs(int64(7), "order_update", 10).
		WillReturnRows(rows)

	list, err := NewRepository(mock).ListRecent(context.Background(), 7, CategoryOrderUpdate, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, CategoryOrderUpdate, list[1].Category)
	assert.True(t, list[1].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMarkAllRead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE notifications SET is_read = true`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := NewRepository(mock).MarkAllRead(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
