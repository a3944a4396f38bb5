package template

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/google/uuid"
)

// GeneratedBoard is the output of template execution: categories and
// capabilities ready to persist onto the target map.
type GeneratedBoard struct {
	Categories   []*domain.Category
	Capabilities []*domain.Capability
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}

// Execute generates categories and capabilities from a template schema.
// Generated categories are appended after the map's existing columns,
// starting at sortOffset; capability hours come from the map's size→hours
// configuration.
func Execute(schema *TemplateSchema, m *domain.Map, sortOffset int) (*GeneratedBoard, error) {
	if err := Validate(schema); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := &GeneratedBoard{}

	for i, catCfg := range schema.Categories {
		cat := &domain.Category{
			ID:          uuid.New().String(),
			MapID:       m.ID,
			Name:        catCfg.Name,
			SortOrder:   sortOffset + i,
			Subcategory: catCfg.Subcategory,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		out.Categories = append(out.Categories, cat)

		for j, capCfg := range catCfg.Capabilities {
			size := domain.Size(domain.CoalesceStr(capCfg.Size, string(domain.SizeTBD)))
			color := ""
			if capCfg.Color != "" {
				normalized, err := domain.NormalizeColor(capCfg.Color)
				if err != nil {
					return nil, err
				}
				color = normalized
			}
			out.Capabilities = append(out.Capabilities, &domain.Capability{
				ID:          uuid.New().String(),
				CategoryID:  cat.ID,
				Name:        capCfg.Name,
				Description: capCfg.Description,
				Size:        size,
				Phase:       domain.Phase(capCfg.Phase),
				Color:       color,
				Hours:       m.HoursFor(size),
				SortOrder:   j,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}
	return out, nil
}
