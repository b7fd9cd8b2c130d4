package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/products"
)

type productStore struct{ *state }

func (s *productStore) Create(_ context.Context, p *products.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sellers[p.SellerProfileID]; !ok {
		return fmt.Errorf("insert product: seller profile %d does not exist", p.SellerProfileID)
	}

	p.ID = s.nextID()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.products[p.ID] = &cp
	p.BrandName = s.sellers[p.SellerProfileID].BrandName
	return nil
}

func (s *productStore) GetByID(_ context.Context, id int64) (*products.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	return s.readProduct(p), nil
}

func (s *productStore) Update(_ context.Context, p *products.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", p.ID, apperr.ErrNotFound)
	}

	p.SellerProfileID = existing.SellerProfileID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *productStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

func (s *productStore) ListActive(_ context.Context, f products.Filter, limit, offset int) ([]*products.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	cat := strings.TrimSpace(f.Category)

	var out []*products.Product
	for _, p := range s.products {
		if p.Status != products.StatusActive {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		if cat != "" && !strings.EqualFold(p.Category, cat) {
			continue
		}
		out = append(out, s.readProduct(p))
	}
	sortProducts(out)
	return page(out, limit, offset), len(out), nil
}

func (s *productStore) ListBySeller(_ context.Context, sellerProfileID int64) ([]*products.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*products.Product
	for _, p := range s.products {
		if p.SellerProfileID == sellerProfileID {
			out = append(out, s.readProduct(p))
		}
	}
	sortProducts(out)
	return out, nil
}

func (s *productStore) SellerAccountIDs(_ context.Context, productIDs []int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]bool)
	var ids []int64
	for _, pid := range productIDs {
		p, ok := s.products[pid]
		if !ok {
			continue
		}
		sp, ok := s.sellers[p.SellerProfileID]
		if !ok || seen[sp.AccountID] {
			continue
		}
		seen[sp.AccountID] = true
		ids = append(ids, sp.AccountID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// readProduct must be called with mu held.
func (s *state) readProduct(p *products.Product) *products.Product {
	cp := *p
	if sp, ok := s.sellers[p.SellerProfileID]; ok {
		cp.BrandName = sp.BrandName
	}
	return &cp
}

// newest first
func sortProducts(list []*products.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
}
