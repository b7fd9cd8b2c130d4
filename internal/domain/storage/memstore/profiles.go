package memstore

import (
	"context"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/profiles"
)

type profileStore struct{ *state }

func (s *profileStore) CreateSeller(_ context.Context, p *profiles.SellerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sellers {
		if existing.AccountID == p.AccountID {
			return profiles.ErrProfileExists
		}
	}

	p.ID = s.nextID()
	p.CreatedAt = s.now()
	cp := *p
	s.sellers[p.ID] = &cp
	return nil
}

func (s *profileStore) CreateShopkeeper(_ context.Context, p *profiles.ShopkeeperProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shopkeepers {
		if existing.AccountID == p.AccountID {
			return profiles.ErrProfileExists
		}
	}

	p.ID = s.nextID()
	p.CreatedAt = s.now()
	cp := *p
	s.shopkeepers[p.ID] = &cp
	return nil
}

func (s *profileStore) SellerByAccount(_ context.Context, accountID int64) (*profiles.SellerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.sellerByAccount(accountID); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("seller profile: %w", apperr.ErrNotFound)
}

func (s *profileStore) ShopkeeperByAccount(_ context.Context, accountID int64) (*profiles.ShopkeeperProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.shopkeepers {
		if p.AccountID == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("shopkeeper profile: %w", apperr.ErrNotFound)
}

func (s *state) sellerByAccount(accountID int64) *profiles.SellerProfile {
	for _, p := range s.sellers {
		if p.AccountID == accountID {
			return p
		}
	}
	return nil
}
