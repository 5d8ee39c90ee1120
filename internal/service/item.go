package service

import (
	"context"
	"strings"
	"time"

	"github.com/swapnest/swapnest/internal/metrics"
	"github.com/swapnest/swapnest/internal/model"
	"github.com/swapnest/swapnest/internal/store"
)

// ItemService handles item business logic. It consults the user store
// only to validate that a referenced owner exists.
type ItemService struct {
	items   store.ItemStore
	users   store.UserStore
	metrics metrics.Recorder
}

// NewItemService creates a new ItemService.
func NewItemService(items store.ItemStore, users store.UserStore, recorder metrics.Recorder) *ItemService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ItemService{
		items:   items,
		users:   users,
		metrics: recorder,
	}
}

// CreateItemInput defines input for creating an item. The owner is never
// taken from the request body.
type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Create lists a new item owned by ownerID. The owner must exist in the
// user store; otherwise store.ErrUserNotFound propagates.
func (s *ItemService) Create(ctx context.Context, ownerID int64, input CreateItemInput) (*model.Item, error) {
	if _, err := s.users.FindUser(ctx, ownerID); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}

	created, err := s.items.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.metrics.IncItemCreated()
	return created, nil
}

// UpdateItemInput defines input for partially updating an item.
// Name and description overwrite only when present and non-blank;
// availability overwrites whenever present.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// Update patches the item. Only the owner may modify it; a non-owner
// gets ErrNotOwner and the stored item is left unchanged.
func (s *ItemService) Update(ctx context.Context, itemID int64, input UpdateItemInput, ownerID int64) (*model.Item, error) {
	item, err := s.items.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if hasValue(input.Name) {
		item.Name = *input.Name
	}
	if hasValue(input.Description) {
		item.Description = *input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	updated, err := s.items.UpdateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.metrics.IncItemUpdated()
	return updated, nil
}

// Delete removes the item. Only the owner may delete it. Like user
// delete, the preceding fetch makes delete strict at this layer.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID int64) (bool, error) {
	item, err := s.items.FindItem(ctx, itemID)
	if err != nil {
		return false, err
	}

	if item.OwnerID != ownerID {
		return false, ErrNotOwner
	}

	deleted, err := s.items.DeleteItem(ctx, itemID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.metrics.IncItemDeleted()
	}
	return deleted, nil
}

// FindItem returns the item by id. Reads are not ownership-restricted:
// any caller presenting a valid caller id may read any item.
func (s *ItemService) FindItem(ctx context.Context, ownerID, itemID int64) (*model.Item, error) {
	return s.items.FindItem(ctx, itemID)
}

// Search returns available items matching text. A blank query returns an
// empty result without consulting the store.
func (s *ItemService) Search(ctx context.Context, ownerID int64, text string) ([]*model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*model.Item{}, nil
	}

	start := time.Now()
	items, err := s.items.SearchItems(ctx, strings.ToLower(text))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSearchDuration(time.Since(start))

	return items, nil
}

// FindAll returns all items owned by ownerID.
func (s *ItemService) FindAll(ctx context.Context, ownerID int64) ([]*model.Item, error) {
	return s.items.GetItems(ctx, ownerID)
}
