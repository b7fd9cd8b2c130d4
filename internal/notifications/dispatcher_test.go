package notifications

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/inbox"
	"bazaar/internal/domain/storage/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingInbox struct {
	inbox.Store
}

func (failingInbox) Create(context.Context, *inbox.Notification) error {
	return errors.New("connection reset")
}

func TestNotifySwallowsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(failingInbox{memstore.New().Inbox}, zap.New(core).Sugar())

	assert.NotPanics(t, func() {
		d.Notify(context.Background(), 1, inbox.CategoryOrderUpdate, "hello", "/x")
	})
	require.Equal(t, 1, logs.FilterMessage("notification dropped").Len())
}

func TestFetchRecent(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(memstore.New().Inbox, zap.NewNop().Sugar())

	for i := 0; i < 12; i++ {
		d.Notify(ctx, 7, inbox.CategoryOrderUpdate, fmt.Sprintf("update %d", i), CustomerOrdersLink)
	}
	d.Notify(ctx, 7, inbox.CategoryNewOrder, "new", SellerOrdersLink)
	d.Notify(ctx, 8, inbox.CategoryOrderUpdate, "someone else", CustomerOrdersLink)

	list, err := d.FetchRecent(ctx, 7, inbox.CategoryOrderUpdate)
	require.NoError(t, err)
	require.Len(t, list, RecentLimit)
	assert.Equal(t, "update 11", list[0].Message)
	for _, n := range list {
		assert.Equal(t, inbox.CategoryOrderUpdate, n.Category)
		assert.Equal(t, int64(7), n.RecipientAccountID)
	}

	all, err := d.FetchRecent(ctx, 7, "")
	require.NoError(t, err)
	assert.Equal(t, "new", all[0].Message)
}

func TestMarkAllReadIgnoresCategory(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(memstore.New().Inbox, zap.NewNop().Sugar())

	d.Notify(ctx, 7, inbox.CategoryOrderUpdate, "a", "")
	d.Notify(ctx, 7, inbox.CategoryNewOrder, "b", "")
	d.Notify(ctx, 8, inbox.CategoryNewOrder, "c", "")

	n, err := d.MarkAllRead(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err := d.UnreadCount(ctx, 7, "")
	require.NoError(t, err)
	assert.Zero(t, unread)

	unread, err = d.UnreadCount(ctx, 8, "")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestOrderMessage(t *testing.T) {
	msg, link := OrderMessage(OrderStatusChanged, "K7Q2MX", "Shipped")
	assert.Equal(t, "Your order (#K7Q2MX) changed to Shipped.", msg)
	assert.Equal(t, "/dashboard/shopkeeper/orders", link)

	msg, link = OrderMessage(OrderPlaced, "K7Q2MX", "")
	assert.Equal(t, "New order (#K7Q2MX) received.", msg)
	assert.Equal(t, SellerOrdersLink, link)
}

func TestDefaultCategory(t *testing.T) {
	assert.Equal(t, inbox.CategoryNewOrder, DefaultCategory(accounts.RoleSeller))
	assert.Equal(t, inbox.CategoryOrderUpdate, DefaultCategory(accounts.RoleShopkeeper))
}
