// Package provisioning creates the role-specific profile of an account. Each
// account gets at most one.
package provisioning

import (
	"context"
	"fmt"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/profiles"
)

type SellerInput struct {
	BrandName       string
	BusinessAddress string
	GSTNumber       *string
}

type ShopkeeperInput struct {
	ShopName      string
	ShopAddress   string
	ContactNumber string
}

type Provisioner struct {
	accounts accounts.Store
	profiles profiles.Store
}

func NewProvisioner(accountsStore accounts.Store, profilesStore profiles.Store) *Provisioner {
	return &Provisioner{accounts: accountsStore, profiles: profilesStore}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", apperr.ErrInvalidArgument, field)
	}
	return nil
}

// account confirms the credential still points at a live account of the given role.
func (p *Provisioner) account(ctx context.Context, claims *auth.Claims, role accounts.Role) error {
	a, err := p.accounts.GetByID(ctx, claims.SubjectID)
	if err != nil {
		return err
	}
	if a.Role != role {
		return fmt.Errorf("%w: %s accounts cannot create a %s profile", apperr.ErrForbidden, a.Role, role)
	}
	return nil
}

func (p *Provisioner) CreateSeller(ctx context.Context, claims *auth.Claims, in SellerInput) (*profiles.SellerProfile, error) {
	if err := p.account(ctx, claims, accounts.RoleSeller); err != nil {
		return nil, err
	}
	if err := required("brand_name", in.BrandName); err != nil {
		return nil, err
	}
	if err := required("business_address", in.BusinessAddress); err != nil {
		return nil, err
	}

	sp := &profiles.SellerProfile{
		AccountID:       claims.SubjectID,
		BrandName:       strings.TrimSpace(in.BrandName),
		BusinessAddress: strings.TrimSpace(in.BusinessAddress),
	}
	if in.GSTNumber != nil && strings.TrimSpace(*in.GSTNumber) != "" {
		gst := strings.ToUpper(strings.TrimSpace(*in.GSTNumber))
		sp.GSTNumber = &gst
	}

	if err := p.profiles.CreateSeller(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (p *Provisioner) CreateShopkeeper(ctx context.Context, claims *auth.Claims, in ShopkeeperInput) (*profiles.ShopkeeperProfile, error) {
	if err := p.account(ctx, claims, accounts.RoleShopkeeper); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"shop_name":      in.ShopName,
		"shop_address":   in.ShopAddress,
		"contact_number": in.ContactNumber,
	} {
		if err := required(field, value); err != nil {
			return nil, err
		}
	}

	sp := &profiles.ShopkeeperProfile{
		AccountID:     claims.SubjectID,
		ShopName:      strings.TrimSpace(in.ShopName),
		ShopAddress:   strings.TrimSpace(in.ShopAddress),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
	}
	if err := p.profiles.CreateShopkeeper(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Get returns the caller's own profile, a *profiles.SellerProfile or a
// *profiles.ShopkeeperProfile depending on role.
func (p *Provisioner) Get(ctx context.Context, claims *auth.Claims) (any, error) {
	switch claims.Role {
	case accounts.RoleSeller:
		return p.profiles.SellerByAccount(ctx, claims.SubjectID)
	case accounts.RoleShopkeeper:
		return p.profiles.ShopkeeperByAccount(ctx, claims.SubjectID)
	default:
		return nil, fmt.Errorf("%w: unknown role", apperr.ErrForbidden)
	}
}
