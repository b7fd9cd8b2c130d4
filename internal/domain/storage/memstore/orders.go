package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/orders"
)

type orderStore struct{ *state }

func (s *orderStore) Create(_ context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: duplicate order number", apperr.ErrConflict)
		}
	}

	o.ID = s.nextID()
	o.Revision = 1
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *orderStore) GetByID(_ context.Context, id int64) (*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return cloneOrder(o), nil
}

func (s *orderStore) ListByCustomer(_ context.Context, customerID int64, limit, offset int) ([]*orders.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*orders.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	sortOrders(out)
	return page(out, limit, offset), len(out), nil
}

func (s *orderStore) ListBySellerProfile(_ context.Context, sellerProfileID int64, limit, offset int) ([]*orders.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*orders.Order
	for _, o := range s.orders {
		if s.hasSellerItem(o, sellerProfileID) {
			out = append(out, cloneOrder(o))
		}
	}
	sortOrders(out)
	return page(out, limit, offset), len(out), nil
}

func (s *orderStore) HasSellerItem(_ context.Context, orderID, sellerProfileID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return false, nil
	}
	return s.hasSellerItem(o, sellerProfileID), nil
}

func (s *orderStore) UpdateStatus(_ context.Context, id int64, status orders.Status, expectedRevision int) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	if o.Revision != expectedRevision {
		return 0, time.Time{}, orders.ErrStaleRevision
	}

	o.Status = status
	o.Revision++
	o.UpdatedAt = s.now()
	return o.Revision, o.UpdatedAt, nil
}

// hasSellerItem must be called with mu held. Items whose product was deleted
// no longer belong to anyone.
func (s *state) hasSellerItem(o *orders.Order, sellerProfileID int64) bool {
	for _, it := range o.Items {
		if p, ok := s.products[it.ProductID]; ok && p.SellerProfileID == sellerProfileID {
			return true
		}
	}
	return false
}

func cloneOrder(o *orders.Order) *orders.Order {
	cp := *o
	cp.Items = append([]orders.Item{}, o.Items...)
	return &cp
}

func sortOrders(list []*orders.Order) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
}
