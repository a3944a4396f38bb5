package domain

import "fmt"

// CapabilityPatch is a partial field update applied to one or more
// capabilities. Nil fields are left untouched. ClearHoursOverride removes
// an existing override (setting HoursOverride applies one).
type CapabilityPatch struct {
	Name               *string
	Description        *string
	Size               *Size
	Phase              *Phase
	Color              *string
	Hours              *int
	HoursOverride      *int
	ClearHoursOverride bool
	SortOrder          *int
	CategoryID         *string
}

// IsZero reports whether the patch changes nothing.
func (p CapabilityPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Size == nil &&
		p.Phase == nil && p.Color == nil && p.Hours == nil &&
		p.HoursOverride == nil && !p.ClearHoursOverride &&
		p.SortOrder == nil && p.CategoryID == nil
}

// Validate rejects unknown enum values and malformed colors before the
// patch reaches storage or in-memory state.
func (p CapabilityPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("capability name is required")
	}
	if p.Size != nil && !ValidSizes[*p.Size] {
		return fmt.Errorf("unknown size %q", *p.Size)
	}
	if p.Phase != nil && *p.Phase != PhaseNone && !ValidPhases[*p.Phase] {
		return fmt.Errorf("unknown phase %q", *p.Phase)
	}
	if p.Color != nil && *p.Color != "" {
		if _, err := NormalizeColor(*p.Color); err != nil {
			return err
		}
	}
	return nil
}

// Apply mutates a capability in place according to the patch.
func (p CapabilityPatch) Apply(c *Capability) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Size != nil {
		c.Size = *p.Size
	}
	if p.Phase != nil {
		c.Phase = *p.Phase
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Hours != nil {
		c.Hours = *p.Hours
	}
	if p.ClearHoursOverride {
		c.HoursOverride = nil
	} else if p.HoursOverride != nil {
		v := *p.HoursOverride
		c.HoursOverride = &v
	}
	if p.SortOrder != nil {
		c.SortOrder = *p.SortOrder
	}
	if p.CategoryID != nil {
		c.CategoryID = *p.CategoryID
	}
}
