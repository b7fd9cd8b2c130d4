package products

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\d`, escapeLike(`c:\d`))
	assert.Equal(t, "basmati", escapeLike("basmati"))
}

func TestRepositoryListActiveMatchesWildcardsLiterally(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM products p`).
		WithArgs(`100\%`, `north\_zone`, "", 15, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	out, total, err := NewRepository(mock).ListActive(context.Background(),
		Filter{Query: " 100% ", Location: "north_zone"}, 15, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
