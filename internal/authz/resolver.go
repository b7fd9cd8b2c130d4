// Package authz decides whether a verified caller may act on a resource.
// Every check here runs before the corresponding mutation.
package authz

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/domain/profiles"
)

type Resolver struct {
	profiles profiles.Store
	products products.Store
	orders   orders.Store
}

func NewResolver(profiles profiles.Store, products products.Store, orders orders.Store) *Resolver {
	return &Resolver{profiles: profiles, products: products, orders: orders}
}

func RequireRole(claims *auth.Claims, roles ...accounts.Role) error {
	if claims == nil {
		return fmt.Errorf("%w: no credential", apperr.ErrUnauthenticated)
	}
	for _, r := range roles {
		if claims.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s may not do this", apperr.ErrForbidden, claims.Role)
}

// RequireSellerProfile returns the caller's seller profile or ErrNotFound.
func (r *Resolver) RequireSellerProfile(ctx context.Context, accountID int64) (*profiles.SellerProfile, error) {
	p, err := r.profiles.SellerByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: seller profile not found, create your profile first", apperr.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// ownerProfile resolves the profile used for ownership checks. A seller without a
// profile owns nothing, so the absence is reported as forbidden.
func (r *Resolver) ownerProfile(ctx context.Context, claims *auth.Claims) (*profiles.SellerProfile, error) {
	p, err := r.profiles.SellerByAccount(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: no seller profile", apperr.ErrForbidden)
		}
		return nil, err
	}
	return p, nil
}

func (r *Resolver) RequireProductOwner(ctx context.Context, claims *auth.Claims, productID int64) (*products.Product, error) {
	if err := RequireRole(claims, accounts.RoleSeller); err != nil {
		return nil, err
	}

	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	profile, err := r.ownerProfile(ctx, claims)
	if err != nil {
		return nil, err
	}
	if p.SellerProfileID != profile.ID {
		return nil, fmt.Errorf("%w: product %d belongs to another seller", apperr.ErrForbidden, productID)
	}
	return p, nil
}

// RequireOrderOwner passes when the caller owns at least one product in the order.
func (r *Resolver) RequireOrderOwner(ctx context.Context, claims *auth.Claims, orderID int64) (*orders.Order, error) {
	if err := RequireRole(claims, accounts.RoleSeller); err != nil {
		return nil, err
	}

	o, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	profile, err := r.ownerProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	ok, err := r.orders.HasSellerItem(ctx, orderID, profile.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: order %d has none of your products", apperr.ErrForbidden, orderID)
	}
	return o, nil
}
