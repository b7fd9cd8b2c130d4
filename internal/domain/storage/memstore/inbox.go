package memstore

import (
	"context"
	"sort"

	"bazaar/internal/domain/inbox"
)

type inboxStore struct{ *state }

func (s *inboxStore) Create(_ context.Context, n *inbox.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextID()
	n.IsRead = false
	n.CreatedAt = s.now()
	cp := *n
	s.inbox[n.ID] = &cp
	return nil
}

func (s *inboxStore) ListRecent(_ context.Context, accountID int64, category inbox.Category, limit int) ([]*inbox.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*inbox.Notification{}
	for _, n := range s.inbox {
		if n.RecipientAccountID != accountID {
			continue
		}
		if category != "" && n.Category != category {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, 0), nil
}

func (s *inboxStore) MarkAllRead(_ context.Context, accountID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, note := range s.inbox {
		if note.RecipientAccountID == accountID && !note.IsRead {
			note.IsRead = true
			n++
		}
	}
	return n, nil
}

func (s *inboxStore) CountUnread(_ context.Context, accountID int64, category inbox.Category) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, note := range s.inbox {
		if note.RecipientAccountID == accountID && !note.IsRead && (category == "" || note.Category == category) {
			n++
		}
	}
	return n, nil
}
