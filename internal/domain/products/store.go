package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/db"

	"github.com/jackc/pgx/v5"
)

// Store is the data access abstraction for the products domain.
type Store interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	ListActive(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error)
	ListBySeller(ctx context.Context, sellerProfileID int64) ([]*Product, error)
	// SellerAccountIDs returns the distinct accounts owning any of the given products.
	SellerAccountIDs(ctx context.Context, productIDs []int64) ([]int64, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const productColumns = `
	p.id, p.seller_profile_id, sp.brand_name, p.name, p.description, p.price, p.stock,
	p.status, p.image_url, p.category, p.location, p.created_at, p.updated_at`

func scanProduct(row pgx.Row, extra ...any) (*Product, error) {
	var (
		p      Product
		status string
	)
	dest := []any{
		&p.ID, &p.SellerProfileID, &p.BrandName, &p.Name, &p.Description, &p.Price, &p.Stock,
		&status, &p.ImageURL, &p.Category, &p.Location, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.Status = Status(status)
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO products (seller_profile_id, name, description, price, stock, status, image_url, category, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		p.SellerProfileID, p.Name, p.Description, p.Price, p.Stock, string(p.Status), p.ImageURL, p.Category, p.Location,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	p, err := scanProduct(r.q.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN seller_profiles sp ON sp.id = p.seller_profile_id
		WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		UPDATE products
		   SET name = $2, description = $3, price = $4, stock = $5, status = $6,
		       image_url = $7, category = $8, location = $9, updated_at = now()
		 WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, string(p.Status), p.ImageURL, p.Category, p.Location,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %d: %w", p.ID, apperr.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a search term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (r *Repository) ListActive(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`, COUNT(*) OVER() AS total_count
		FROM products p
		JOIN seller_profiles sp ON sp.id = p.seller_profile_id
		WHERE p.status = 'Active'
		  AND ($1 = '' OR p.name ILIKE '%' || $1 || '%' ESCAPE '\' OR p.description ILIKE '%' || $1 || '%' ESCAPE '\')
		  AND ($2 = '' OR p.location ILIKE '%' || $2 || '%' ESCAPE '\')
		  AND ($3 = '' OR lower(p.category) = lower($3))
		ORDER BY p.created_at DESC
		LIMIT $4 OFFSET $5`,
		escapeLike(strings.TrimSpace(f.Query)), escapeLike(strings.TrimSpace(f.Location)), strings.TrimSpace(f.Category), limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		out   []*Product
		total int
	)
	for rows.Next() {
		p, err := scanProduct(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) ListBySeller(ctx context.Context, sellerProfileID int64) ([]*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN seller_profiles sp ON sp.id = p.seller_profile_id
		WHERE p.seller_profile_id = $1
		ORDER BY p.created_at DESC`, sellerProfileID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) SellerAccountIDs(ctx context.Context, productIDs []int64) ([]int64, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT sp.account_id
		FROM products p
		JOIN seller_profiles sp ON sp.id = p.seller_profile_id
		WHERE p.id = ANY($1)
		ORDER BY sp.account_id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("seller accounts: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
