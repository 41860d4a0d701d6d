package rendering

import "github.com/jonathan/resume-studio/internal/types"

var elegantTimelineStyle = style{
	id:         types.TemplateElegantTimeline,
	fontFamily: "Lato",
	headings: map[string]string{
		types.SectionSummary:    "PROFESSIONAL SUMMARY",
		types.SectionExperience: "EXPERIENCE",
		types.SectionProjects:   "PROJECTS",
		types.SectionEducation:  "EDUCATION",
		types.SectionSkills:     "CORE SKILLS",
	},
	body:        compactScale,
	headingSize: prominentScale,
	upperCustom: true,
	date:        FormatMonthYear,
}

// elegantTimeline is single column. Experience entries hang off a vertical
// timeline with a marker per entry.
type elegantTimeline struct{}

func (elegantTimeline) ID() types.TemplateID { return types.TemplateElegantTimeline }

func (elegantTimeline) Render(doc *types.ResumeDocument) Node {
	st := elegantTimelineStyle
	blocks := singleColumn(doc, st)
	for i, b := range blocks {
		if b.Attr(AttrSection) == types.SectionExperience {
			blocks[i] = asTimeline(b)
		}
	}
	children := []Node{header(doc.PersonalInfo, true)}
	children = append(children, el(KindColumn, "single-column", blocks...))
	return page(doc, st, children...)
}

// asTimeline wraps each entry of a section in a timeline row with a marker
func asTimeline(n Node) Node {
	children := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind != KindGroup {
			children = append(children, c)
			continue
		}
		row := el(KindGroup, "timeline-row", Node{Kind: KindGroup, Class: "timeline-marker"}, c)
		children = append(children, row.With(AttrItemID, c.Attr(AttrItemID)))
	}
	n.Children = children
	n.Class += " timeline"
	return n
}
