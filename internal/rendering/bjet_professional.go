package rendering

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	bjetMatrixCategories = 4
	bjetDefaultLevel     = "B"
	bjetLevelLegend      = "S = Team Lead or Managerial Level experience, A = Professional project Experience, " +
		"B=Highly confident skill, C = Personal / Academic Project Experience, D = Theoretical Knowledge"
)

// Custom sections whose titles contain one of these keywords are pulled into
// dedicated blocks, in this order. Matching is case-insensitive.
var bjetCustomGroups = []string{"training", "language", "certification", "achievement"}

var bjetStyle = style{
	id:         types.TemplateBJetProfessional,
	fontFamily: "Arial",
	headings: map[string]string{
		types.SectionEducation:  "Academic Background 学歴",
		types.SectionExperience: "Professional Working Experience 職歴",
		types.SectionSkills:     "Technical Skills 技術スキル",
		types.SectionProjects:   "Professional Project Experience 仕事としての経験",
	},
	body:        ScaleClasses{Small: "text-10px", Medium: "text-11px", Large: "text-xs"},
	headingSize: prominentScale,
	date:        FormatDotted,
}

// bjetProfessional is the table-based CV format. Block order is fixed; section
// visibility still applies.
type bjetProfessional struct{}

func (bjetProfessional) ID() types.TemplateID { return types.TemplateBJetProfessional }

func (bjetProfessional) Render(doc *types.ResumeDocument) Node {
	st := bjetStyle
	badge := el(KindGroup, "badge", txt(KindText, "badge-text", "Career Center")).With(AttrBlock, "badge")
	children := []Node{badge, bjetBasicInfo(doc, st)}

	builders := []struct {
		id    string
		build func(*types.ResumeDocument, style) (Node, bool)
	}{
		{types.SectionEducation, bjetEducation},
		{types.SectionExperience, bjetExperience},
		{types.SectionSkills, bjetSkills},
		{types.SectionProjects, bjetProjects},
	}
	for _, b := range builders {
		if !IsSectionVisible(doc.Sections, b.id) {
			continue
		}
		if n, ok := b.build(doc, st); ok {
			children = append(children, n)
		}
	}
	children = append(children, bjetCustom(doc, st)...)
	return page(doc, st, children...)
}

func labelCell(label string) Node {
	return txt(KindCell, "label", label)
}

func valueCell(value string) Node {
	return txt(KindCell, "value", value)
}

func row(cells ...Node) Node {
	return el(KindRow, "row", cells...)
}

func table(class string, rows ...Node) Node {
	return el(KindTable, "table "+class, rows...)
}

func bjetBasicInfo(doc *types.ResumeDocument, st style) Node {
	info := doc.PersonalInfo

	nameRow := row(labelCell("Name"), valueCell(orFallback(info.FullName, fallbackName)))
	if img, ok := profileImage(info); ok {
		photo := el(KindCell, "photo", img).With(AttrSpan, "6")
		nameRow.Children = append(nameRow.Children, photo)
	}
	rows := []Node{nameRow}
	if info.BirthDate != "" {
		rows = append(rows, row(labelCell("Birth date"), valueCell(info.BirthDate)))
	}

	var links []Node
	for _, href := range []string{info.Website, info.GitHub, info.LinkedIn} {
		if href != "" {
			links = append(links, link(href, href))
		}
	}
	rows = append(rows,
		row(labelCell("Current Address"), valueCell(info.Location)),
		row(labelCell("Contact Number"), valueCell(info.Phone)),
		row(labelCell("E-mail"), valueCell(info.Email)),
		row(labelCell("Portfolio link"), el(KindCell, "value", links...)),
	)

	return el(KindGroup, "basic-info",
		txt(KindHeading, "section-heading "+st.headingSize.For(doc.FontSize), "Basic Information 基本情報"),
		table("basic-info-table", rows...),
	).With(AttrBlock, "basic-info")
}

func bjetEducation(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Education) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionEducation, doc.FontSize)}
	for _, edu := range doc.Education {
		passing := edu.GraduationYear
		if edu.Honors != "" {
			passing = joinNonEmpty(" • ", passing, edu.Honors)
		}
		t := table("education-table",
			row(labelCell("Degree"), valueCell(edu.Degree)),
			row(labelCell("University Name"), valueCell(edu.Institution)),
			row(labelCell("Duration"), valueCell(edu.GraduationYear), labelCell("CGPA"), valueCell(edu.GPA)),
			row(labelCell("Passing Date"), valueCell(passing)),
		)
		children = append(children, t.With(AttrItemID, edu.ID))
	}
	return section(types.SectionEducation, "education", children...), true
}

func bjetExperience(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Experience) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionExperience, doc.FontSize)}
	for _, exp := range doc.Experience {
		var duties []Node
		if exp.Description != "" {
			duties = append(duties, txt(KindText, "entry-description", exp.Description))
		}
		if points := NonBlank(exp.BulletPoints); len(points) > 0 {
			duties = append(duties, bulletList(points))
		}
		t := table("experience-table",
			row(labelCell("Company Name"), valueCell(exp.Company)),
			row(labelCell("Job Title"), valueCell(exp.JobTitle)),
			row(labelCell("Job Responsibilities"), el(KindCell, "value", duties...)),
			row(labelCell("Technology / Language Used"), valueCell(exp.Location)),
			row(labelCell("Duration"), valueCell(FormatRange(exp.StartDate, exp.EndDate, exp.Current, st.date))),
		)
		children = append(children, t.With(AttrItemID, exp.ID))
	}
	return section(types.SectionExperience, "experience", children...), true
}

// bjetSkills renders the skills matrix: one name column and one level column per
// category, for at most four categories. Every listed skill gets the default level.
func bjetSkills(doc *types.ResumeDocument, st style) (Node, bool) {
	var categories []types.SkillCategory
	if doc.Skills.Mode == types.SkillsModeCategorized {
		categories = doc.Skills.Categorized
	} else if len(doc.Skills.Simple) > 0 {
		categories = []types.SkillCategory{{ID: "simple", Name: "Skills", Skills: doc.Skills.Simple}}
	}
	if len(categories) == 0 {
		return Node{}, false
	}
	if len(categories) > bjetMatrixCategories {
		categories = categories[:bjetMatrixCategories]
	}

	var head []Node
	depth := 0
	for _, c := range categories {
		head = append(head,
			txt(KindCell, "label", c.Name).With(AttrHeader, "true"),
			txt(KindCell, "label", "Skill Level").With(AttrHeader, "true"),
		)
		if len(c.Skills) > depth {
			depth = len(c.Skills)
		}
	}
	rows := []Node{row(head...)}
	for i := 0; i < depth; i++ {
		var cells []Node
		for _, c := range categories {
			skill, level := "", ""
			if i < len(c.Skills) && c.Skills[i] != "" {
				skill, level = c.Skills[i], bjetDefaultLevel
			}
			cells = append(cells, valueCell(skill), txt(KindCell, "level", level))
		}
		rows = append(rows, row(cells...))
	}

	return section(types.SectionSkills, "skills",
		st.heading(types.SectionSkills, doc.FontSize),
		txt(KindText, "legend", bjetLevelLegend),
		table("skills-matrix", rows...),
	), true
}

func bjetProjects(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Projects) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionProjects, doc.FontSize)}
	for _, p := range doc.Projects {
		details := []Node{txt(KindText, "entry-title", p.Title)}
		if p.Description != "" {
			details = append(details, txt(KindText, "entry-description", p.Description))
		}
		if p.LiveURL != "" {
			details = append(details, link(p.LiveURL, p.LiveURL))
		}
		t := table("project-table",
			row(
				txt(KindCell, "label", "Duration").With(AttrHeader, "true"),
				txt(KindCell, "label", "Project Details").With(AttrHeader, "true"),
				txt(KindCell, "label", "Technology Used").With(AttrHeader, "true"),
				txt(KindCell, "label", "Your Role").With(AttrHeader, "true"),
			),
			row(
				valueCell(FormatRange(p.StartDate, p.EndDate, false, st.date)),
				el(KindCell, "value", details...),
				valueCell(strings.Join(p.Technologies, ", ")),
				valueCell(""),
			),
		)
		children = append(children, t.With(AttrItemID, p.ID))
	}
	return section(types.SectionProjects, "projects", children...), true
}

// bjetGroup returns the first keyword group the title falls into, or ""
func bjetGroup(title string) string {
	lower := strings.ToLower(title)
	for _, g := range bjetCustomGroups {
		if strings.Contains(lower, g) {
			return g
		}
	}
	return ""
}

// bjetCustom renders the grouped custom sections first, then the rest in stored order
func bjetCustom(doc *types.ResumeDocument, st style) []Node {
	visible := VisibleCustomSections(doc)
	var out []Node
	for _, g := range bjetCustomGroups {
		for _, cs := range visible {
			if bjetGroup(cs.Title) == g {
				out = append(out, customBlock(cs, st, doc.FontSize).With("group", g))
			}
		}
	}
	for _, cs := range visible {
		if bjetGroup(cs.Title) == "" {
			out = append(out, customBlock(cs, st, doc.FontSize))
		}
	}
	return out
}
