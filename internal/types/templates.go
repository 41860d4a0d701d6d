package types

// TemplateID identifies one of the visual layout strategies
type TemplateID string

// Template ids, in catalog order. The first entry is the default and the fallback.
const (
	TemplateTechSidebar          TemplateID = "tech-sidebar"
	TemplateBusinessProfessional TemplateID = "business-professional"
	TemplateModernMinimal        TemplateID = "modern-minimal"
	TemplateElegantTimeline      TemplateID = "elegant-timeline"
	TemplateCreativeModern       TemplateID = "creative-modern"
	TemplateBJetProfessional     TemplateID = "bjet-professional"
)

// DefaultTemplate is used for new documents and for unknown template ids
const DefaultTemplate = TemplateTechSidebar

// TemplateLayout describes the column structure of a template
type TemplateLayout string

// Template layouts
const (
	LayoutSingleColumn TemplateLayout = "single-column"
	LayoutTwoColumn    TemplateLayout = "two-column"
	LayoutSidebar      TemplateLayout = "sidebar"
)

// TemplateConfig is the catalog entry shown in the template picker
type TemplateConfig struct {
	ID          TemplateID     `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"` // tech, business or creative
	Layout      TemplateLayout `json:"layout"`
	FontFamily  string         `json:"fontFamily"`
	ColorScheme []string       `json:"colorScheme"`
	Features    []string       `json:"features"`
}

var templateCatalog = []TemplateConfig{
	{
		ID:          TemplateTechSidebar,
		Name:        "Tech Sidebar",
		Description: "Perfect for developers and engineers with sidebar layout",
		Category:    "tech",
		Layout:      LayoutSidebar,
		FontFamily:  "Inter",
		ColorScheme: []string{"#3b82f6", "#06b6d4", "#8b5cf6"},
		Features:    []string{"Profile photo", "Two-column layout", "Tech-focused design"},
	},
	{
		ID:          TemplateBusinessProfessional,
		Name:        "Business Professional",
		Description: "Clean and formal design for corporate roles",
		Category:    "business",
		Layout:      LayoutSingleColumn,
		FontFamily:  "Georgia",
		ColorScheme: []string{"#1f2937", "#4b5563", "#6b7280"},
		Features:    []string{"Single column", "Professional typography", "Minimal design"},
	},
	{
		ID:          TemplateModernMinimal,
		Name:        "Modern Minimal",
		Description: "Balanced design for creative and technical roles",
		Category:    "creative",
		Layout:      LayoutTwoColumn,
		FontFamily:  "Poppins",
		ColorScheme: []string{"#10b981", "#f59e0b", "#ef4444"},
		Features:    []string{"Bold sections", "Modern typography", "Color accents"},
	},
	{
		ID:          TemplateElegantTimeline,
		Name:        "Elegant Timeline",
		Description: "Timeline-based layout focusing on career progression",
		Category:    "business",
		Layout:      LayoutSingleColumn,
		FontFamily:  "Lato",
		ColorScheme: []string{"#6366f1", "#8b5cf6", "#ec4899"},
		Features:    []string{"Timeline design", "Career-focused", "Elegant styling"},
	},
	{
		ID:          TemplateCreativeModern,
		Name:        "Creative Modern",
		Description: "Bold and creative design for creative professionals",
		Category:    "creative",
		Layout:      LayoutTwoColumn,
		FontFamily:  "Source Sans Pro",
		ColorScheme: []string{"#f59e0b", "#ef4444", "#8b5cf6"},
		Features:    []string{"Creative layout", "Bold colors", "Modern design"},
	},
	{
		ID:          TemplateBJetProfessional,
		Name:        "B-JET Professional",
		Description: "Formal table-based CV format for professional applications",
		Category:    "business",
		Layout:      LayoutSingleColumn,
		FontFamily:  "Arial",
		ColorScheme: []string{"#1e3a8a", "#93c5fd", "#1f2937"},
		Features:    []string{"Table layout", "Formal structure", "Multi-section support"},
	},
}

// Templates returns a copy of the template catalog in display order
func Templates() []TemplateConfig {
	out := make([]TemplateConfig, len(templateCatalog))
	for i, cfg := range templateCatalog {
		cfg.ColorScheme = cloneStrings(cfg.ColorScheme)
		cfg.Features = cloneStrings(cfg.Features)
		out[i] = cfg
	}
	return out
}

// LookupTemplate returns the catalog entry for id
func LookupTemplate(id TemplateID) (TemplateConfig, bool) {
	for _, cfg := range Templates() {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return TemplateConfig{}, false
}

// IsKnown reports whether id names a catalog template
func (id TemplateID) IsKnown() bool {
	_, ok := LookupTemplate(id)
	return ok
}
