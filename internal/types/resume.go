// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Editor-enforced soft caps. The model itself never rejects documents that exceed them.
const (
	MaxEducationEntries  = 3
	MaxSkillCategories   = 4
	MaxSkillsPerCategory = 5
)

// PersonalInfo holds the header and contact fields of a resume
type PersonalInfo struct {
	FullName     string `json:"fullName"`
	JobTitle     string `json:"jobTitle"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Website      string `json:"website,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"` // Inline data URL
	BirthDate    string `json:"birthDate,omitempty"`
}

// Experience represents a single work history entry
type Experience struct {
	ID           string   `json:"id"`
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"` // YYYY-MM
	EndDate      string   `json:"endDate"`   // YYYY-MM, ignored when Current is set
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	BulletPoints []string `json:"bulletPoints"`
}

// Education represents a degree entry
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

// Project represents a portfolio project
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// AddTechnology appends tech unless an identical entry already exists.
// Returns true when the list changed.
func (p *Project) AddTechnology(tech string) bool {
	for _, existing := range p.Technologies {
		if existing == tech {
			return false
		}
	}
	p.Technologies = append(p.Technologies, tech)
	return true
}

// SkillsMode selects which skill list renderers use
type SkillsMode string

// Skill modes
const (
	SkillsModeSimple      SkillsMode = "simple"
	SkillsModeCategorized SkillsMode = "categorized"
)

// SkillCategory is a named group of skills
type SkillCategory struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Skills keeps both representations so switching modes never loses data
type Skills struct {
	Mode        SkillsMode      `json:"mode"`
	Simple      []string        `json:"simple"`
	Categorized []SkillCategory `json:"categorized"`
}

// CustomSectionType controls how custom section content is rendered
type CustomSectionType string

// Custom section content types
const (
	CustomSectionParagraph CustomSectionType = "paragraph"
	CustomSectionBullets   CustomSectionType = "bullets"
)

// Placement is the column a custom section occupies in two-column templates
type Placement string

// Column placements
const (
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
)

// CustomSection is a user-defined block of text or bullets
type CustomSection struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Type      CustomSectionType `json:"type"`
	Visible   bool              `json:"visible"`
	Order     int               `json:"order"`
	Placement Placement         `json:"placement,omitempty"`
}

// ResumeColors holds the CSS color strings used by templates
type ResumeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// Section ids for top-level blocks
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionCustom     = "custom"
)

// ResumeSection controls visibility and order of a top-level block
type ResumeSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order"`
}

// PageFormat is the physical paper size
type PageFormat string

// Page formats
const (
	PageFormatLetter PageFormat = "letter"
	PageFormatA4     PageFormat = "a4"
)

// FontSize is the coarse type scale selector
type FontSize string

// Font sizes
const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// ResumeDocument is the root resume model. JSON tags match the portable file format.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Skills         Skills          `json:"skills"`
	CustomSections []CustomSection `json:"customSections"`
	Sections       []ResumeSection `json:"sections"`
	Colors         ResumeColors    `json:"colors"`
	Template       TemplateID      `json:"template"`
	PageFormat     PageFormat      `json:"pageFormat"`
	FontSize       FontSize        `json:"fontSize"`
	FontFamily     string          `json:"fontFamily"`
}

// DefaultColors returns the default color palette
func DefaultColors() ResumeColors {
	return ResumeColors{
		Primary:    "#3b82f6",
		Secondary:  "#6b7280",
		Accent:     "#10b981",
		Text:       "#1f2937",
		Background: "#ffffff",
	}
}

// DefaultSections returns the default top-level block layout
func DefaultSections() []ResumeSection {
	return []ResumeSection{
		{ID: SectionSummary, Title: "Professional Summary", Visible: true, Order: 1},
		{ID: SectionExperience, Title: "Experience", Visible: true, Order: 2},
		{ID: SectionProjects, Title: "Projects", Visible: true, Order: 3},
		{ID: SectionEducation, Title: "Education", Visible: true, Order: 4},
		{ID: SectionSkills, Title: "Skills", Visible: true, Order: 5},
		{ID: SectionCustom, Title: "Custom Sections", Visible: true, Order: 6},
	}
}

// NewDocument returns the empty document a session starts with
func NewDocument() ResumeDocument {
	return ResumeDocument{
		Experience: []Experience{},
		Education:  []Education{},
		Projects:   []Project{},
		Skills: Skills{
			Mode:        SkillsModeSimple,
			Simple:      []string{},
			Categorized: []SkillCategory{},
		},
		CustomSections: []CustomSection{},
		Sections:       DefaultSections(),
		Colors:         DefaultColors(),
		Template:       DefaultTemplate,
		PageFormat:     PageFormatLetter,
		FontSize:       FontSizeMedium,
		FontFamily:     "Inter",
	}
}

// HasRequiredShape reports whether a decoded JSON object carries the fields every
// importable document must have: personalInfo, sections and colors.
func HasRequiredShape(raw map[string]any) bool {
	for _, key := range []string{"personalInfo", "sections", "colors"} {
		if v, ok := raw[key]; !ok || v == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document
func (d *ResumeDocument) Clone() ResumeDocument {
	out := *d
	out.Experience = cloneSlice(d.Experience, func(e Experience) Experience {
		e.BulletPoints = cloneStrings(e.BulletPoints)
		return e
	})
	out.Education = cloneSlice(d.Education, nil)
	out.Projects = cloneSlice(d.Projects, func(p Project) Project {
		p.Technologies = cloneStrings(p.Technologies)
		return p
	})
	out.Skills = d.Skills.Clone()
	out.CustomSections = cloneSlice(d.CustomSections, nil)
	out.Sections = cloneSlice(d.Sections, nil)
	return out
}

// Clone returns a deep copy of the skills block
func (s Skills) Clone() Skills {
	return Skills{
		Mode:        s.Mode,
		Simple:      cloneStrings(s.Simple),
		Categorized: CloneCategories(s.Categorized),
	}
}

// CloneCategories deep-copies a category list
func CloneCategories(categories []SkillCategory) []SkillCategory {
	return cloneSlice(categories, func(c SkillCategory) SkillCategory {
		c.Skills = cloneStrings(c.Skills)
		return c
	})
}

// Section returns the section entry with the given id, if any
func (d *ResumeDocument) Section(id string) (ResumeSection, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return ResumeSection{}, false
}

// cloneSlice copies a slice, preserving nil vs empty so JSON output is unchanged
func cloneSlice[T any](in []T, deep func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		if deep != nil {
			v = deep(v)
		}
		out[i] = v
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
