package accounts

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	var p password
	require.NoError(t, p.Set("s3cret-pass"))

	assert.NoError(t, p.Compare("s3cret-pass"))
	assert.Error(t, p.Compare("wrong"))
}

func TestCompareUnknownCostsLikeARealHash(t *testing.T) {
	var p password
	require.NoError(t, p.Set("s3cret-pass"))

	realCost, err := bcrypt.Cost(p.hash)
	require.NoError(t, err)
	dummyCost, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, realCost, dummyCost)

	assert.Error(t, CompareUnknown("s3cret-pass"))
	assert.Error(t, CompareUnknown("bazaar-unknown-account"))
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a := &Account{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Role: RoleSeller}
	require.NoError(t, a.Password.Set("password1"))

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("Asha", "Rao", "asha@example.com", pgxmock.AnyArg(), "seller").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err = NewRepository(mock).Create(context.Background(), a)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "password", "role", "created_at"}).
		AddRow(int64(7), "Asha", "Rao", "asha@example.com", []byte("hash"), "shopkeeper", created)
	mock.ExpectQuery(`FROM accounts WHERE email = \$1`).WithArgs("asha@example.com").WillReturnRows(rows)

	a, err := NewRepository(mock).GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, RoleShopkeeper, a.Role)
	assert.Equal(t, created, a.CreatedAt)

	mock.ExpectQuery(`FROM accounts WHERE id = \$1`).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)
	_, err = NewRepository(mock).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
