package store

import (
	"context"
	"sync"

	"github.com/swapnest/swapnest/internal/model"
)

// MemoryItemStore holds item records in a process-local map.
// Its id counter is independent of the user store's.
type MemoryItemStore struct {
	mu     sync.Mutex
	items  map[int64]*model.Item
	nextID int64
}

// NewMemoryItemStore creates an empty in-memory item store.
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{
		items:  make(map[int64]*model.Item),
		nextID: 1,
	}
}

// CreateItem assigns the next id and inserts the item unconditionally.
func (s *MemoryItemStore) CreateItem(_ context.Context, item *model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := item.Clone()
	stored.ID = s.nextID
	s.nextID++

	s.items[stored.ID] = stored
	return stored.Clone(), nil
}

// UpdateItem replaces the stored record wholesale.
func (s *MemoryItemStore) UpdateItem(_ context.Context, item *model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return nil, ErrItemNotFound
	}

	s.items[item.ID] = item.Clone()
	return item.Clone(), nil
}

// DeleteItem removes the record if present.
func (s *MemoryItemStore) DeleteItem(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// FindItem returns the record or ErrItemNotFound.
func (s *MemoryItemStore) FindItem(_ context.Context, id int64) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item.Clone(), nil
}

// GetItems returns all items owned by ownerID.
func (s *MemoryItemStore) GetItems(_ context.Context, ownerID int64) ([]*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*model.Item, 0)
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			items = append(items, item.Clone())
		}
	}
	return items, nil
}

// SearchItems returns all available items matching text. The query must
// already be lower-cased.
func (s *MemoryItemStore) SearchItems(_ context.Context, text string) ([]*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*model.Item, 0)
	for _, item := range s.items {
		if item.MatchesText(text) {
			items = append(items, item.Clone())
		}
	}
	return items, nil
}
