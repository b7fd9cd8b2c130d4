package provisioning

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/profiles"
	"bazaar/internal/domain/storage/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, s accounts.Store, email string, role accounts.Role) *auth.Claims {
	t.Helper()
	a := &accounts.Account{Email: email, Role: role}
	require.NoError(t, s.Create(context.Background(), a))
	return &auth.Claims{SubjectID: a.ID, Role: role}
}

func TestCreateSellerOnce(t *testing.T) {
	ctx := context.Background()
	c := memstore.New()
	p := NewProvisioner(c.Accounts, c.Profiles)
	seller := signup(t, c.Accounts, "s@example.com", accounts.RoleSeller)

	gst := " 22aaaaa0000a1z5 "
	first, err := p.CreateSeller(ctx, seller, SellerInput{BrandName: "Acme", BusinessAddress: "1 Mill St", GSTNumber: &gst})
	require.NoError(t, err)
	require.NotNil(t, first.GSTNumber)
	assert.Equal(t, "22AAAAA0000A1Z5", *first.GSTNumber)

	_, err = p.CreateSeller(ctx, seller, SellerInput{BrandName: "Other", BusinessAddress: "2 Mill St"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := p.Get(ctx, seller)
	require.NoError(t, err)
	sp := got.(*profiles.SellerProfile)
	assert.Equal(t, first.ID, sp.ID)
	assert.Equal(t, "Acme", sp.BrandName)
}

func TestCreateShopkeeper(t *testing.T) {
	ctx := context.Background()
	c := memstore.New()
	p := NewProvisioner(c.Accounts, c.Profiles)
	shop := signup(t, c.Accounts, "k@example.com", accounts.RoleShopkeeper)

	_, err := p.Get(ctx, shop)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = p.CreateShopkeeper(ctx, shop, ShopkeeperInput{ShopName: "Corner", ShopAddress: "3 High St"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	created, err := p.CreateShopkeeper(ctx, shop, ShopkeeperInput{ShopName: "Corner", ShopAddress: "3 High St", ContactNumber: "98000"})
	require.NoError(t, err)

	got, err := p.Get(ctx, shop)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.(*profiles.ShopkeeperProfile).ID)
}

func TestCreateProfileChecks(t *testing.T) {
	ctx := context.Background()
	c := memstore.New()
	p := NewProvisioner(c.Accounts, c.Profiles)
	shop := signup(t, c.Accounts, "k@example.com", accounts.RoleShopkeeper)

	_, err := p.CreateSeller(ctx, &auth.Claims{SubjectID: 404, Role: accounts.RoleSeller}, SellerInput{BrandName: "A", BusinessAddress: "B"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = p.CreateSeller(ctx, shop, SellerInput{BrandName: "A", BusinessAddress: "B"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	seller := signup(t, c.Accounts, "s@example.com", accounts.RoleSeller)
	_, err = p.CreateSeller(ctx, seller, SellerInput{BrandName: " ", BusinessAddress: "B"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
