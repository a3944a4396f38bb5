package domain

import "time"

// Template is a catalog entry describing a reusable set of categories and
// starter capabilities that can be applied onto a map.
type Template struct {
	ID          string
	Name        string
	Description string
	Path        string
}

// AppliedTemplate records that a template was applied to a map, so loads
// can report which templates a map already incorporates.
type AppliedTemplate struct {
	MapID      string
	TemplateID string
	AppliedAt  time.Time
}
