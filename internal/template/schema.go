package template

// TemplateSchema is the top-level JSON template structure: a reusable set
// of categories with starter capabilities, applied onto an existing map.
type TemplateSchema struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Version     string           `json:"version,omitempty"`
	Description string           `json:"description,omitempty"`
	Categories  []CategoryConfig `json:"categories"`
}

type CategoryConfig struct {
	Name         string             `json:"name"`
	Subcategory  bool               `json:"subcategory,omitempty"`
	Capabilities []CapabilityConfig `json:"capabilities,omitempty"`
}

type CapabilityConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Color       string `json:"color,omitempty"`
}
