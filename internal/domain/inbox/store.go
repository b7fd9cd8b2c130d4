package inbox

import (
	"context"
	"fmt"

	"bazaar/internal/db"
)

type Store interface {
	Create(ctx context.Context, n *Notification) error
	// ListRecent returns newest first. An empty category means all.
	ListRecent(ctx context.Context, accountID int64, category Category, limit int) ([]*Notification, error)
	MarkAllRead(ctx context.Context, accountID int64) (int64, error)
	CountUnread(ctx context.Context, accountID int64, category Category) (int, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) Create(ctx context.Context, n *Notification) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO notifications (recipient_account_id, category, message, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`,
		n.RecipientAccountID, string(n.Category), n.Message, n.Link,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *Repository) ListRecent(ctx context.Context, accountID int64, category Category, limit int) ([]*Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT id, recipient_account_id, category, message, link, is_read, created_at
		FROM notifications
		WHERE recipient_account_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`, accountID, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := []*Notification{}
	for rows.Next() {
		var (
			n   Notification
			cat string
		)
		if err := rows.Scan(&n.ID, &n.RecipientAccountID, &cat, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Category = Category(cat)
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *Repository) MarkAllRead(ctx context.Context, accountID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	tag, err := r.q.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE recipient_account_id = $1 AND NOT is_read`, accountID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) CountUnread(ctx context.Context, accountID int64, category Category) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_account_id = $1 AND NOT is_read AND ($2 = '' OR category = $2)`,
		accountID, string(category)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
