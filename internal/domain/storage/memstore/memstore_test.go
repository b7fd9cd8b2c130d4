package memstore

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/domain/profiles"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	c := New()

	o := &orders.Order{OrderNumber: "BZR-AAAA-0001", CustomerID: 1, Status: orders.StatusPending}
	require.NoError(t, c.Orders.Create(ctx, o))
	assert.Equal(t, 1, o.Revision)

	rev, _, err := c.Orders.UpdateStatus(ctx, o.ID, orders.StatusShipped, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)

	_, _, err = c.Orders.UpdateStatus(ctx, o.ID, orders.StatusCancelled, 1)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, _, err = c.Orders.UpdateStatus(ctx, 999, orders.StatusShipped, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := c.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, got.Status)
}

func TestSellerOwnershipQueries(t *testing.T) {
	ctx := context.Background()
	c := New()

	acc := &accounts.Account{Email: "s@example.com", Role: accounts.RoleSeller}
	require.NoError(t, c.Accounts.Create(ctx, acc))
	assert.ErrorIs(t, c.Accounts.Create(ctx, &accounts.Account{Email: "S@example.com"}), accounts.ErrDuplicateEmail)

	sp := &profiles.SellerProfile{AccountID: acc.ID, BrandName: "Acme"}
	require.NoError(t, c.Profiles.CreateSeller(ctx, sp))

	p := &products.Product{SellerProfileID: sp.ID, Name: "Tea", Price: decimal.NewFromInt(5), Stock: 3, Status: products.StatusActive}
	require.NoError(t, c.Products.Create(ctx, p))

	ids, err := c.Products.SellerAccountIDs(ctx, []int64{p.ID, p.ID, 12345})
	require.NoError(t, err)
	assert.Equal(t, []int64{acc.ID}, ids)

	o := &orders.Order{OrderNumber: "BZR-AAAA-0002", CustomerID: 42, Items: []orders.Item{{ProductID: p.ID, Quantity: 1}}}
	require.NoError(t, c.Orders.Create(ctx, o))

	ok, err := c.Orders.HasSellerItem(ctx, o.ID, sp.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, total, err := c.Orders.ListBySellerProfile(ctx, sp.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)

	// order history survives product deletion
	require.NoError(t, c.Products.Delete(ctx, p.ID))
	got, err := c.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}
