package template

import (
	"fmt"

	"github.com/mapwise/capmap/internal/domain"
)

// Validate checks a template schema for structural problems before any
// entities are generated from it.
func Validate(schema *TemplateSchema) error {
	if schema.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if schema.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if len(schema.Categories) == 0 {
		return fmt.Errorf("template %s has no categories", schema.ID)
	}

	seen := make(map[string]bool, len(schema.Categories))
	for i, cat := range schema.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category name %q", cat.Name)
		}
		seen[cat.Name] = true

		for j, capCfg := range cat.Capabilities {
			if capCfg.Name == "" {
				return fmt.Errorf("category %q capability %d: name is required", cat.Name, j)
			}
			if capCfg.Size != "" && !domain.ValidSizes[domain.Size(capCfg.Size)] {
				return fmt.Errorf("capability %q: unknown size %q", capCfg.Name, capCfg.Size)
			}
			if capCfg.Phase != "" && !domain.ValidPhases[domain.Phase(capCfg.Phase)] {
				return fmt.Errorf("capability %q: unknown phase %q", capCfg.Name, capCfg.Phase)
			}
			if capCfg.Color != "" {
				if _, err := domain.NormalizeColor(capCfg.Color); err != nil {
					return fmt.Errorf("capability %q: %w", capCfg.Name, err)
				}
			}
		}
	}
	return nil
}
