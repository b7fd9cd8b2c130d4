package memstore

import (
	"context"
	"fmt"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/accounts"
)

type accountStore struct{ *state }

func (s *accountStore) Create(_ context.Context, a *accounts.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return accounts.ErrDuplicateEmail
		}
	}

	a.ID = s.nextID()
	a.CreatedAt = s.now()
	cp := *a
	s.accounts[a.ID] = &cp
	return nil
}

func (s *accountStore) GetByID(_ context.Context, id int64) (*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account: %w", apperr.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (s *accountStore) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("account: %w", apperr.ErrNotFound)
}
