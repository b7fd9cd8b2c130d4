package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/db"

	"github.com/jackc/pgx/v5"
)

// ErrStaleRevision is returned by UpdateStatus when another writer committed first.
var ErrStaleRevision = fmt.Errorf("%w: order was modified concurrently, reload and retry", apperr.ErrConflict)

type Store interface {
	// Create writes the order and its items atomically and fills ID, Revision and timestamps.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*Order, int, error)
	ListBySellerProfile(ctx context.Context, sellerProfileID int64, limit, offset int) ([]*Order, int, error)
	// HasSellerItem reports whether any line item of the order is a product of the seller profile.
	HasSellerItem(ctx context.Context, orderID, sellerProfileID int64) (bool, error)
	// UpdateStatus is a compare-and-swap on revision. It returns the new revision.
	UpdateStatus(ctx context.Context, id int64, status Status, expectedRevision int) (int, time.Time, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const orderColumns = `
	id, order_number, customer_id, total_amount, status, shipping_address, contact,
	revision, created_at, updated_at`

func scanOrder(row pgx.Row, extra ...any) (*Order, error) {
	var (
		o      Order
		status string
	)
	dest := []any{
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.TotalAmount, &status, &o.ShippingAddress, &o.Contact,
		&o.Revision, &o.CreatedAt, &o.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}

func (r *Repository) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op once committed
	}()

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, customer_id, total_amount, status, shipping_address, contact)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, revision, created_at, updated_at`,
		o.OrderNumber, o.CustomerID, o.TotalAmount, string(o.Status), o.ShippingAddress, o.Contact,
	).Scan(&o.ID, &o.Revision, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4, $5)`,
			o.ID, it.ProductID, it.ProductName, it.Quantity, it.PriceAtPurchase,
		); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*Order, int, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`, COUNT(*) OVER() AS total_count
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, customerID, limit, offset)
}

func (r *Repository) ListBySellerProfile(ctx context.Context, sellerProfileID int64, limit, offset int) ([]*Order, int, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`, COUNT(*) OVER() AS total_count
		FROM orders o
		WHERE EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.seller_profile_id = $1
		)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, sellerProfileID, limit, offset)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		out   []*Order
		total int
	)
	for rows.Next() {
		o, err := scanOrder(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := r.attachItems(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) attachItems(ctx context.Context, list []*Order) error {
	if len(list) == 0 {
		return nil
	}

	byID := make(map[int64]*Order, len(list))
	ids := make([]int64, 0, len(list))
	for _, o := range list {
		o.Items = []Item{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, price_at_purchase
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtPurchase); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *Repository) HasSellerItem(ctx context.Context, orderID, sellerProfileID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = $1 AND p.seller_profile_id = $2
		)`, orderID, sellerProfileID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("order ownership: %w", err)
	}
	return ok, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status, expectedRevision int) (int, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var (
		revision  int
		updatedAt time.Time
	)
	err := r.q.QueryRow(ctx, `
		UPDATE orders
		   SET status = $2, revision = revision + 1, updated_at = now()
		 WHERE id = $1 AND revision = $3
		RETURNING revision, updated_at`,
		id, string(status), expectedRevision,
	).Scan(&revision, &updatedAt)
	if err == nil {
		return revision, updatedAt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, time.Time{}, fmt.Errorf("update order status: %w", err)
	}

	// No row matched: either the order is gone or the revision moved on.
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, time.Time{}, fmt.Errorf("update order status: %w", err)
	}
	if !exists {
		return 0, time.Time{}, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return 0, time.Time{}, ErrStaleRevision
}
