package storage

import (
	"bazaar/internal/db"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/inbox"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/domain/profiles"
)

// Container groups the stores the services depend on.
type Container struct {
	Accounts accounts.Store
	Profiles profiles.Store
	Products products.Store
	Orders   orders.Store
	Inbox    inbox.Store
}

// NewContainer wires the postgres repositories. q is usually a *pgxpool.Pool.
func NewContainer(q db.Querier) *Container {
	return &Container{
		Accounts: accounts.NewRepository(q),
		Profiles: profiles.NewRepository(q),
		Products: products.NewRepository(q),
		Orders:   orders.NewRepository(q),
		Inbox:    inbox.NewRepository(q),
	}
}
