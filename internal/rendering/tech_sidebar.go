package rendering

import "github.com/jonathan/resume-studio/internal/types"

var techSidebarStyle = style{
	id:         types.TemplateTechSidebar,
	fontFamily: "Inter",
	headings: map[string]string{
		types.SectionSummary:    "PROFESSIONAL SUMMARY",
		types.SectionExperience: "EXPERIENCE",
		types.SectionProjects:   "PROJECTS",
		types.SectionEducation:  "EDUCATION",
		types.SectionSkills:     "SKILLS",
	},
	body:        compactScale,
	headingSize: compactScale,
	upperCustom: true,
	date:        FormatMonthYear,
}

// techSidebar renders a full-width header over a 30/70 sidebar layout.
// The profile photo sits at the top of the sidebar.
type techSidebar struct{}

func (techSidebar) ID() types.TemplateID { return types.TemplateTechSidebar }

func (techSidebar) Render(doc *types.ResumeDocument) Node {
	st := techSidebarStyle
	layout := sidebarColumns
	layout.leftClass = "sidebar"
	layout.rightClass = "main"

	var lead []Node
	if img, ok := profileImage(doc.PersonalInfo); ok {
		lead = append(lead, img)
	}
	return page(doc, st,
		header(doc.PersonalInfo, false),
		twoColumn(doc, st, layout, lead...),
	)
}
