// Package memstore is an in-memory implementation of every store in
// storage.Container. It backs the handler tests and local runs without postgres.
package memstore

import (
	"sync"
	"time"

	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/inbox"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/domain/profiles"
	"bazaar/internal/domain/storage"
)

type state struct {
	mu sync.RWMutex

	seq int64
	now func() time.Time

	accounts    map[int64]*accounts.Account
	sellers     map[int64]*profiles.SellerProfile
	shopkeepers map[int64]*profiles.ShopkeeperProfile
	products    map[int64]*products.Product
	orders      map[int64]*orders.Order
	inbox       map[int64]*inbox.Notification
}

// New returns a container whose stores share one in-memory database.
func New() *storage.Container {
	s := &state{
		now:         time.Now,
		accounts:    make(map[int64]*accounts.Account),
		sellers:     make(map[int64]*profiles.SellerProfile),
		shopkeepers: make(map[int64]*profiles.ShopkeeperProfile),
		products:    make(map[int64]*products.Product),
		orders:      make(map[int64]*orders.Order),
		inbox:       make(map[int64]*inbox.Notification),
	}
	return &storage.Container{
		Accounts: &accountStore{s},
		Profiles: &profileStore{s},
		Products: &productStore{s},
		Orders:   &orderStore{s},
		Inbox:    &inboxStore{s},
	}
}

// nextID must be called with mu held. IDs are unique across tables, which keeps
// ordering by id equivalent to ordering by insertion.
func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
