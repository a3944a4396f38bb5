package domain

import (
	"fmt"
	"time"
)

// Capability is a sized, phased work item placed within a category.
//
// Hours is the computed estimate derived from the owning map's size→hours
// configuration; HoursOverride, when set, always wins over the computed
// value. Color is an explicit hex color ("" when the capability inherits
// its phase's color or has none).
type Capability struct {
	ID            string
	CategoryID    string
	Name          string
	Description   string
	Size          Size
	Phase         Phase
	Color         string
	Hours         int
	HoursOverride *int
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveHours returns the override when present, else the computed hours.
func (c *Capability) EffectiveHours() int {
	return IntFromPtrWithDefault(c.Hours, c.HoursOverride)
}

// Sized reports whether the capability has been given a real size.
func (c *Capability) Sized() bool {
	return c.Size != "" && c.Size != SizeTBD
}

// Validate checks the fields required before a capability can be persisted.
func (c *Capability) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("capability name is required")
	}
	if c.CategoryID == "" {
		return fmt.Errorf("capability must belong to a category")
	}
	if c.Size != "" && !ValidSizes[c.Size] {
		return fmt.Errorf("unknown size %q", c.Size)
	}
	if c.Phase != PhaseNone && !ValidPhases[c.Phase] {
		return fmt.Errorf("unknown phase %q", c.Phase)
	}
	if c.Color != "" {
		if _, err := NormalizeColor(c.Color); err != nil {
			return err
		}
	}
	return nil
}
