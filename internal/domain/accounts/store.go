package accounts

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/db"

	"github.com/jackc/pgx/v5"
)

var ErrDuplicateEmail = fmt.Errorf("%w: an account with that email already exists", apperr.ErrConflict)

type Store interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) Create(ctx context.Context, a *Account) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO accounts (first_name, last_name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		a.FirstName, a.LastName, a.Email, a.Password.hash, string(a.Role),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "accounts_email_key") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *Repository) getOne(ctx context.Context, where string, arg any) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var (
		a    Account
		role string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password, role, created_at
		FROM accounts `+where, arg,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Password.hash, &role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.Role = Role(role)
	return &a, nil
}
