package domain

import (
	"fmt"
	"time"
)

// Category is a grouping column on the board. Categories are ordered by
// SortOrder ascending within their map; Subcategory marks indented
// sub-columns rendered under their predecessor.
type Category struct {
	ID          string
	MapID       string
	Name        string
	SortOrder   int
	Subcategory bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required before a category can be persisted.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if c.MapID == "" {
		return fmt.Errorf("category must belong to a map")
	}
	return nil
}
