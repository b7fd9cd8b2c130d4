// Package notifications records advisory inbox messages. Clients poll for them;
// nothing is pushed.
package notifications

import (
	"context"

	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/inbox"

	"go.uber.org/zap"
)

// RecentLimit caps FetchRecent.
const RecentLimit = 10

type Dispatcher struct {
	store  inbox.Store
	logger *zap.SugaredLogger
}

func NewDispatcher(store inbox.Store, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{store: store, logger: logger}
}

// Notify writes one notification. It is called after the primary write has
// committed, so a failure here is logged and dropped, never returned.
func (d *Dispatcher) Notify(ctx context.Context, recipientID int64, category inbox.Category, message, link string) {
	n := &inbox.Notification{
		RecipientAccountID: recipientID,
		Category:           category,
		Message:            message,
		Link:               link,
	}
	if err := d.store.Create(ctx, n); err != nil {
		d.logger.Warnw("notification dropped",
			"recipient", recipientID,
			"category", category,
			"error", err.Error(),
		)
	}
}

// FetchRecent returns the newest notifications for the account. An empty
// category returns all of them.
func (d *Dispatcher) FetchRecent(ctx context.Context, accountID int64, category inbox.Category) ([]*inbox.Notification, error) {
	return d.store.ListRecent(ctx, accountID, category, RecentLimit)
}

// MarkAllRead flips every notification of the account regardless of category.
func (d *Dispatcher) MarkAllRead(ctx context.Context, accountID int64) (int64, error) {
	return d.store.MarkAllRead(ctx, accountID)
}

func (d *Dispatcher) UnreadCount(ctx context.Context, accountID int64, category inbox.Category) (int, error) {
	return d.store.CountUnread(ctx, accountID, category)
}

// DefaultCategory is the bell feed a role reads when none is asked for.
func DefaultCategory(role accounts.Role) inbox.Category {
	switch role {
	case accounts.RoleSeller:
		return inbox.CategoryNewOrder
	case accounts.RoleShopkeeper:
		return inbox.CategoryOrderUpdate
	default:
		return ""
	}
}
