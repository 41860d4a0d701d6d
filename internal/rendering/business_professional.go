package rendering

import "github.com/jonathan/resume-studio/internal/types"

var businessProfessionalStyle = style{
	id:         types.TemplateBusinessProfessional,
	fontFamily: "Georgia",
	headings: map[string]string{
		types.SectionSummary:    "Professional Summary",
		types.SectionExperience: "Professional Experience",
		types.SectionProjects:   "Key Projects",
		types.SectionEducation:  "Education",
		types.SectionSkills:     "Technical Skills",
	},
	body:        compactScale,
	headingSize: compactScale,
	date:        FormatMonthYear,
}

type businessProfessional struct{}

func (businessProfessional) ID() types.TemplateID { return types.TemplateBusinessProfessional }

func (businessProfessional) Render(doc *types.ResumeDocument) Node {
	st := businessProfessionalStyle
	children := []Node{header(doc.PersonalInfo, true)}
	children = append(children, el(KindColumn, "single-column", singleColumn(doc, st)...))
	return page(doc, st, children...)
}
