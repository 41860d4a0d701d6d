package rendering

import "github.com/jonathan/resume-studio/internal/types"

var creativeModernStyle = style{
	id:         types.TemplateCreativeModern,
	fontFamily: "Source Sans Pro",
	headings: map[string]string{
		types.SectionSummary:    "ABOUT ME",
		types.SectionExperience: "EXPERIENCE",
		types.SectionProjects:   "PROJECTS",
		types.SectionEducation:  "EDUCATION",
		types.SectionSkills:     "SKILLS",
	},
	body:        compactScale,
	headingSize: prominentScale,
	upperCustom: true,
	date:        FormatMonthYear,
}

// creativeModern renders a colored banner header with the photo, then a
// narrow skills/education column beside the main content.
type creativeModern struct{}

func (creativeModern) ID() types.TemplateID { return types.TemplateCreativeModern }

func (creativeModern) Render(doc *types.ResumeDocument) Node {
	st := creativeModernStyle
	layout := sidebarColumns
	layout.leftClass = "accent-panel"
	layout.rightClass = "main"

	banner := header(doc.PersonalInfo, true)
	banner.Class = "header banner"
	return page(doc, st,
		banner,
		twoColumn(doc, st, layout),
	)
}
