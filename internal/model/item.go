package model

import "strings"

// Item represents a shareable resource owned by exactly one user.
// OwnerID is stamped from the authenticated caller at creation time and
// references the user that existed then; deleting the owner later does
// not cascade to their items.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// Clone returns a copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	if i.RequestID != nil {
		rid := *i.RequestID
		c.RequestID = &rid
	}
	return &c
}

// MatchesText reports whether the item should appear in a text search.
// Only available items match; the query must already be lower-cased.
func (i *Item) MatchesText(text string) bool {
	if !i.Available {
		return false
	}
	return strings.Contains(strings.ToLower(i.Name), text) ||
		strings.Contains(strings.ToLower(i.Description), text)
}
