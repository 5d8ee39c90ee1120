package dto

import (
	"strings"

	"github.com/swapnest/swapnest/internal/model"
)

// CreateItemRequest represents the request body for listing an item.
// Any owner or item id in the body is ignored; the owner comes from the
// caller identity header.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// Validate checks required fields.
func (r *CreateItemRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrBlankName
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrBlankDescription
	}
	if r.Available == nil {
		return ErrMissingAvailable
	}
	return nil
}

// UpdateItemRequest represents the request body for patching an item.
// Absent fields leave the stored value untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// ToItemResponse converts an Item model to ItemResponse DTO.
func ToItemResponse(item *model.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

// ToItemListResponse converts a slice of Item models to response DTOs.
func ToItemListResponse(items []*model.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = *ToItemResponse(item)
	}
	return responses
}
