package rendering

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-studio/internal/types"
)

// PresentLabel replaces the end date of a current position
const PresentLabel = "Present"

var bulletMarker = regexp.MustCompile(`^[•\-*]\s*`)

// VisibleSections returns the visible sections sorted by ascending order.
// Ties keep their stored relative order.
func VisibleSections(sections []types.ResumeSection) []types.ResumeSection {
	visible := make([]types.ResumeSection, 0, len(sections))
	for _, s := range sections {
		if s.Visible {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	return visible
}

// IsSectionVisible reports whether the section id is present and visible
func IsSectionVisible(sections []types.ResumeSection, id string) bool {
	for _, s := range sections {
		if s.ID == id {
			return s.Visible
		}
	}
	return false
}

// VisibleCustomSections returns the visible custom sections in stored order.
// Nothing is returned when the custom block itself is hidden.
func VisibleCustomSections(doc *types.ResumeDocument) []types.CustomSection {
	if !IsSectionVisible(doc.Sections, types.SectionCustom) {
		return nil
	}
	var out []types.CustomSection
	for _, cs := range doc.CustomSections {
		if cs.Visible {
			out = append(out, cs)
		}
	}
	return out
}

// PartitionCustom splits the visible custom sections by placement.
// Sections without a placement go to the right column.
func PartitionCustom(doc *types.ResumeDocument) (left, right []types.CustomSection) {
	for _, cs := range VisibleCustomSections(doc) {
		if ResolvePlacement(cs) == types.PlacementLeft {
			left = append(left, cs)
		} else {
			right = append(right, cs)
		}
	}
	return left, right
}

// ResolvePlacement returns the effective column of a custom section
func ResolvePlacement(cs types.CustomSection) types.Placement {
	if cs.Placement == types.PlacementLeft {
		return types.PlacementLeft
	}
	return types.PlacementRight
}

func parseDate(s string) (time.Time, bool, bool) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, true, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, true
	}
	if t, err := time.Parse("2006", s); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

// FormatMonthYear turns "2024-01" into "Jan 2024". A bare year is returned as is,
// an empty string stays empty and unparseable input is returned unchanged.
func FormatMonthYear(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, hasMonth, ok := parseDate(s)
	if !ok {
		return s
	}
	if !hasMonth {
		return t.Format("2006")
	}
	return t.Format("Jan 2006")
}

// FormatDotted turns "2024-01" into "2024.01"
func FormatDotted(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, hasMonth, ok := parseDate(s)
	if !ok {
		return s
	}
	if !hasMonth {
		return t.Format("2006")
	}
	return fmt.Sprintf("%d.%02d", t.Year(), int(t.Month()))
}

// FormatRange renders a start/end pair with the given date formatter.
// current replaces the end date with "Present". Missing parts are dropped.
func FormatRange(start, end string, current bool, format func(string) string) string {
	from := format(start)
	to := format(end)
	if current {
		to = PresentLabel
	}
	switch {
	case from != "" && to != "":
		return from + " - " + to
	case from != "":
		return from
	default:
		return to
	}
}

// SplitBullets splits bullet-mode custom content into display lines
func SplitBullets(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = bulletMarker.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// NonBlank drops bullet points that contain only whitespace
func NonBlank(points []string) []string {
	var out []string
	for _, p := range points {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// ScaleClasses maps the three font sizes to a template's type-scale classes
type ScaleClasses struct {
	Small  string
	Medium string
	Large  string
}

// For returns the class for size; unknown sizes use the medium class
func (s ScaleClasses) For(size types.FontSize) string {
	switch size {
	case types.FontSizeSmall:
		return s.Small
	case types.FontSizeLarge:
		return s.Large
	default:
		return s.Medium
	}
}

// ActiveSkills returns the skill groups for the active mode. Simple mode yields a
// single unnamed group.
func ActiveSkills(skills types.Skills) []types.SkillCategory {
	if skills.Mode == types.SkillsModeCategorized {
		return skills.Categorized
	}
	if len(skills.Simple) == 0 {
		return nil
	}
	return []types.SkillCategory{{Skills: skills.Simple}}
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
