package authz

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/domain/profiles"
	"bazaar/internal/domain/storage"
	"bazaar/internal/domain/storage/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store             *storage.Container
	resolver          *Resolver
	alice, bob        *auth.Claims
	shopkeeper        *auth.Claims
	profilelessCaller *auth.Claims
	aliceP, bobP      *products.Product
	sharedOrder       *orders.Order
	aliceOnlyOrder    *orders.Order
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	c := memstore.New()

	seller := func(email, brand string) (*auth.Claims, *profiles.SellerProfile) {
		a := &accounts.Account{Email: email, Role: accounts.RoleSeller}
		require.NoError(t, c.Accounts.Create(ctx, a))
		sp := &profiles.SellerProfile{AccountID: a.ID, BrandName: brand}
		require.NoError(t, c.Profiles.CreateSeller(ctx, sp))
		return &auth.Claims{SubjectID: a.ID, Role: accounts.RoleSeller}, sp
	}
	product := func(sp *profiles.SellerProfile, name string) *products.Product {
		p := &products.Product{SellerProfileID: sp.ID, Name: name, Price: decimal.NewFromInt(10), Stock: 5, Status: products.StatusActive}
		require.NoError(t, c.Products.Create(ctx, p))
		return p
	}

	f := &fixture{store: c, resolver: NewResolver(c.Profiles, c.Products, c.Orders)}

	var aliceSP, bobSP *profiles.SellerProfile
	f.alice, aliceSP = seller("alice@example.com", "Alice Mills")
	f.bob, bobSP = seller("bob@example.com", "Bob Grains")
	f.aliceP = product(aliceSP, "Flour")
	f.bobP = product(bobSP, "Rice")

	shop := &accounts.Account{Email: "shop@example.com", Role: accounts.RoleShopkeeper}
	require.NoError(t, c.Accounts.Create(ctx, shop))
	f.shopkeeper = &auth.Claims{SubjectID: shop.ID, Role: accounts.RoleShopkeeper}

	lonely := &accounts.Account{Email: "lonely@example.com", Role: accounts.RoleSeller}
	require.NoError(t, c.Accounts.Create(ctx, lonely))
	f.profilelessCaller = &auth.Claims{SubjectID: lonely.ID, Role: accounts.RoleSeller}

	f.sharedOrder = &orders.Order{OrderNumber: "BZR-0001", CustomerID: shop.ID, Status: orders.StatusPending, Items: []orders.Item{
		{ProductID: f.aliceP.ID, Quantity: 1, PriceAtPurchase: decimal.NewFromInt(10)},
		{ProductID: f.bobP.ID, Quantity: 1, PriceAtPurchase: decimal.NewFromInt(10)},
	}}
	require.NoError(t, c.Orders.Create(ctx, f.sharedOrder))

	f.aliceOnlyOrder = &orders.Order{OrderNumber: "BZR-0002", CustomerID: shop.ID, Status: orders.StatusPending, Items: []orders.Item{
		{ProductID: f.aliceP.ID, Quantity: 2, PriceAtPurchase: decimal.NewFromInt(10)},
	}}
	require.NoError(t, c.Orders.Create(ctx, f.aliceOnlyOrder))

	return f
}

func TestRequireRole(t *testing.T) {
	seller := &auth.Claims{SubjectID: 1, Role: accounts.RoleSeller}

	assert.NoError(t, RequireRole(seller, accounts.RoleSeller))
	assert.NoError(t, RequireRole(seller, accounts.RoleShopkeeper, accounts.RoleSeller))
	assert.ErrorIs(t, RequireRole(seller, accounts.RoleShopkeeper), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireRole(nil, accounts.RoleSeller), apperr.ErrUnauthenticated)
}

func TestRequireProductOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.resolver.RequireProductOwner(ctx, f.alice, f.aliceP.ID)
	require.NoError(t, err)
	assert.Equal(t, f.aliceP.ID, p.ID)

	_, err = f.resolver.RequireProductOwner(ctx, f.bob, f.aliceP.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireProductOwner(ctx, f.shopkeeper, f.aliceP.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireProductOwner(ctx, f.profilelessCaller, f.aliceP.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireProductOwner(ctx, f.alice, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRequireOrderOwnerPartialOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, c := range []*auth.Claims{f.alice, f.bob} {
		o, err := f.resolver.RequireOrderOwner(ctx, c, f.sharedOrder.ID)
		require.NoError(t, err)
		assert.Equal(t, f.sharedOrder.ID, o.ID)
	}

	_, err := f.resolver.RequireOrderOwner(ctx, f.alice, f.aliceOnlyOrder.ID)
	assert.NoError(t, err)

	_, err = f.resolver.RequireOrderOwner(ctx, f.bob, f.aliceOnlyOrder.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireOrderOwner(ctx, f.shopkeeper, f.sharedOrder.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireOrderOwner(ctx, f.alice, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRequireOrderOwnerAfterProductDeletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Products.Delete(ctx, f.bobP.ID))

	_, err := f.resolver.RequireOrderOwner(ctx, f.bob, f.sharedOrder.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.resolver.RequireOrderOwner(ctx, f.alice, f.sharedOrder.ID)
	assert.NoError(t, err)
}

func TestRequireSellerProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sp, err := f.resolver.RequireSellerProfile(ctx, f.alice.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Mills", sp.BrandName)

	_, err = f.resolver.RequireSellerProfile(ctx, f.profilelessCaller.SubjectID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
