package profiles

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/db"

	"github.com/jackc/pgx/v5"
)

var ErrProfileExists = fmt.Errorf("%w: profile already exists", apperr.ErrConflict)

// Store keeps at most one profile per account per role; the unique constraint on
// account_id is what enforces it.
type Store interface {
	CreateSeller(ctx context.Context, p *SellerProfile) error
	CreateShopkeeper(ctx context.Context, p *ShopkeeperProfile) error
	SellerByAccount(ctx context.Context, accountID int64) (*SellerProfile, error)
	ShopkeeperByAccount(ctx context.Context, accountID int64) (*ShopkeeperProfile, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) CreateSeller(ctx context.Context, p *SellerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO seller_profiles (account_id, brand_name, business_address, gst_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.AccountID, p.BrandName, p.BusinessAddress, p.GSTNumber,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "seller_profiles_account_id_key") {
			return ErrProfileExists
		}
		return fmt.Errorf("insert seller profile: %w", err)
	}
	return nil
}

func (r *Repository) CreateShopkeeper(ctx context.Context, p *ShopkeeperProfile) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO shopkeeper_profiles (account_id, shop_name, shop_address, contact_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.AccountID, p.ShopName, p.ShopAddress, p.ContactNumber,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "shopkeeper_profiles_account_id_key") {
			return ErrProfileExists
		}
		return fmt.Errorf("insert shopkeeper profile: %w", err)
	}
	return nil
}

func (r *Repository) SellerByAccount(ctx context.Context, accountID int64) (*SellerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var p SellerProfile
	err := r.q.QueryRow(ctx, `
		SELECT id, account_id, brand_name, business_address, gst_number, created_at
		FROM seller_profiles WHERE account_id = $1`, accountID,
	).Scan(&p.ID, &p.AccountID, &p.BrandName, &p.BusinessAddress, &p.GSTNumber, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("seller profile: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get seller profile: %w", err)
	}
	return &p, nil
}

func (r *Repository) ShopkeeperByAccount(ctx context.Context, accountID int64) (*ShopkeeperProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var p ShopkeeperProfile
	err := r.q.QueryRow(ctx, `
		SELECT id, account_id, shop_name, shop_address, contact_number, created_at
		FROM shopkeeper_profiles WHERE account_id = $1`, accountID,
	).Scan(&p.ID, &p.AccountID, &p.ShopName, &p.ShopAddress, &p.ContactNumber, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("shopkeeper profile: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get shopkeeper profile: %w", err)
	}
	return &p, nil
}
