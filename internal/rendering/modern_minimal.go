package rendering

import "github.com/jonathan/resume-studio/internal/types"

var modernMinimalStyle = style{
	id:         types.TemplateModernMinimal,
	fontFamily: "Poppins",
	headings: map[string]string{
		types.SectionSummary:    "Profile",
		types.SectionExperience: "Experience",
		types.SectionProjects:   "Projects",
		types.SectionEducation:  "Education",
		types.SectionSkills:     "Skills",
	},
	body:        compactScale,
	headingSize: prominentScale,
	date:        FormatMonthYear,
}

type modernMinimal struct{}

func (modernMinimal) ID() types.TemplateID { return types.TemplateModernMinimal }

func (modernMinimal) Render(doc *types.ResumeDocument) Node {
	st := modernMinimalStyle
	layout := sidebarColumns
	layout.leftClass = "narrow"
	layout.rightClass = "wide"
	return page(doc, st,
		header(doc.PersonalInfo, true),
		twoColumn(doc, st, layout),
	)
}
