package rendering

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	fallbackName     = "Your Name"
	fallbackJobTitle = "Your Job Title"
)

// style carries the per-template settings shared block builders need
type style struct {
	id          types.TemplateID
	fontFamily  string
	headings    map[string]string
	body        ScaleClasses
	headingSize ScaleClasses
	upperCustom bool
	date        func(string) string
}

var (
	compactScale   = ScaleClasses{Small: "text-xs", Medium: "text-xs", Large: "text-sm"}
	prominentScale = ScaleClasses{Small: "text-sm", Medium: "text-sm", Large: "text-base"}
)

func (st style) heading(id string, size types.FontSize) Node {
	return txt(KindHeading, "section-heading "+st.headingSize.For(size), st.headings[id])
}

func page(doc *types.ResumeDocument, st style, children ...Node) Node {
	family := doc.FontFamily
	if strings.TrimSpace(family) == "" {
		family = st.fontFamily
	}
	n := el(KindPage, "page template-"+string(st.id)+" "+st.body.For(doc.FontSize), children...)
	n = n.With("template", string(st.id))
	n = n.With("font-family", family)
	return n.With("page-format", string(doc.PageFormat))
}

func header(info types.PersonalInfo, withImage bool) Node {
	var children []Node
	if withImage {
		if img, ok := profileImage(info); ok {
			children = append(children, img)
		}
	}
	children = append(children,
		txt(KindHeading, "name", orFallback(info.FullName, fallbackName)),
		txt(KindText, "job-title", orFallback(info.JobTitle, fallbackJobTitle)),
	)
	if contacts := contactList(info); len(contacts.Children) > 0 {
		children = append(children, contacts)
	}
	return el(KindHeader, "header", children...)
}

func profileImage(info types.PersonalInfo) (Node, bool) {
	if info.ProfileImage == "" {
		return Node{}, false
	}
	return Node{Kind: KindImage, Class: "profile-image"}.With(AttrSrc, info.ProfileImage), true
}

func contactList(info types.PersonalInfo) Node {
	var items []Node
	for _, v := range []struct{ class, text string }{
		{"email", info.Email},
		{"phone", info.Phone},
		{"location", info.Location},
	} {
		if v.text != "" {
			items = append(items, txt(KindItem, "contact "+v.class, v.text))
		}
	}
	for _, v := range []struct{ class, href string }{
		{"website", info.Website},
		{"linkedin", info.LinkedIn},
		{"github", info.GitHub},
	} {
		if v.href != "" {
			items = append(items, el(KindItem, "contact "+v.class, link(v.href, v.href)))
		}
	}
	return el(KindList, "contacts", items...)
}

func link(href, label string) Node {
	return txt(KindLink, "link", label).With(AttrHref, href)
}

func tags(class string, values []string) Node {
	items := make([]Node, 0, len(values))
	for _, v := range values {
		items = append(items, txt(KindTag, "tag", v))
	}
	return el(KindGroup, class, items...)
}

func bulletList(points []string) Node {
	items := make([]Node, 0, len(points))
	for _, p := range points {
		items = append(items, txt(KindItem, "bullet", p))
	}
	return el(KindList, "bullets", items...)
}

// block builds the standard rendering of a top-level section. ok is false when the
// section has nothing to show.
func block(doc *types.ResumeDocument, st style, id string) (Node, bool) {
	switch id {
	case types.SectionSummary:
		return summaryBlock(doc, st)
	case types.SectionExperience:
		return experienceBlock(doc, st)
	case types.SectionProjects:
		return projectsBlock(doc, st)
	case types.SectionEducation:
		return educationBlock(doc, st)
	case types.SectionSkills:
		return skillsBlock(doc, st)
	}
	return Node{}, false
}

func summaryBlock(doc *types.ResumeDocument, st style) (Node, bool) {
	if strings.TrimSpace(doc.Summary) == "" {
		return Node{}, false
	}
	return section(types.SectionSummary, "summary",
		st.heading(types.SectionSummary, doc.FontSize),
		txt(KindText, "summary-text", doc.Summary),
	), true
}

func experienceEntry(exp types.Experience, st style) Node {
	children := []Node{
		txt(KindHeading, "entry-title", exp.JobTitle),
	}
	if org := joinNonEmpty(" • ", exp.Company, exp.Location); org != "" {
		children = append(children, txt(KindText, "entry-org", org))
	}
	if dates := FormatRange(exp.StartDate, exp.EndDate, exp.Current, st.date); dates != "" {
		children = append(children, txt(KindText, "entry-dates", dates))
	}
	if exp.Description != "" {
		children = append(children, txt(KindText, "entry-description", exp.Description))
	}
	if points := NonBlank(exp.BulletPoints); len(points) > 0 {
		children = append(children, bulletList(points))
	}
	return el(KindGroup, "entry experience-entry", children...).With(AttrItemID, exp.ID)
}

func experienceBlock(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Experience) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionExperience, doc.FontSize)}
	for _, exp := range doc.Experience {
		children = append(children, experienceEntry(exp, st))
	}
	return section(types.SectionExperience, "experience", children...), true
}

func projectEntry(p types.Project, st style) Node {
	children := []Node{txt(KindHeading, "entry-title", p.Title)}
	if dates := FormatRange(p.StartDate, p.EndDate, false, st.date); dates != "" {
		children = append(children, txt(KindText, "entry-dates", dates))
	}
	if p.Description != "" {
		children = append(children, txt(KindText, "entry-description", p.Description))
	}
	if len(p.Technologies) > 0 {
		children = append(children, tags("technologies", p.Technologies))
	}
	var links []Node
	if p.LiveURL != "" {
		links = append(links, link(p.LiveURL, "Live: "+p.LiveURL))
	}
	if p.GitHubURL != "" {
		links = append(links, link(p.GitHubURL, "Code: "+p.GitHubURL))
	}
	if len(links) > 0 {
		children = append(children, el(KindGroup, "project-links", links...))
	}
	return el(KindGroup, "entry project-entry", children...).With(AttrItemID, p.ID)
}

func projectsBlock(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Projects) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionProjects, doc.FontSize)}
	for _, p := range doc.Projects {
		children = append(children, projectEntry(p, st))
	}
	return section(types.SectionProjects, "projects", children...), true
}

func educationEntry(edu types.Education) Node {
	children := []Node{txt(KindHeading, "entry-title", edu.Degree)}
	if org := joinNonEmpty(" • ", edu.Institution, edu.Location); org != "" {
		children = append(children, txt(KindText, "entry-org", org))
	}
	detail := edu.GraduationYear
	if edu.GPA != "" {
		detail = joinNonEmpty(" • ", detail, "GPA: "+edu.GPA)
	}
	if detail != "" {
		children = append(children, txt(KindText, "entry-dates", detail))
	}
	if edu.Honors != "" {
		children = append(children, txt(KindText, "entry-honors", edu.Honors))
	}
	return el(KindGroup, "entry education-entry", children...).With(AttrItemID, edu.ID)
}

func educationBlock(doc *types.ResumeDocument, st style) (Node, bool) {
	if len(doc.Education) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionEducation, doc.FontSize)}
	for _, edu := range doc.Education {
		children = append(children, educationEntry(edu))
	}
	return section(types.SectionEducation, "education", children...), true
}

func skillsBlock(doc *types.ResumeDocument, st style) (Node, bool) {
	groups := ActiveSkills(doc.Skills)
	if len(groups) == 0 {
		return Node{}, false
	}
	children := []Node{st.heading(types.SectionSkills, doc.FontSize)}
	if doc.Skills.Mode != types.SkillsModeCategorized {
		children = append(children, tags("skills-simple", groups[0].Skills))
		return section(types.SectionSkills, "skills", children...), true
	}
	for _, c := range groups {
		group := el(KindGroup, "skill-category",
			txt(KindHeading, "category-name", c.Name),
			tags("skill-tags", c.Skills),
		)
		children = append(children, group.With(AttrItemID, c.ID))
	}
	return section(types.SectionSkills, "skills", children...), true
}

func customBlock(cs types.CustomSection, st style, size types.FontSize) Node {
	title := cs.Title
	if st.upperCustom {
		title = strings.ToUpper(title)
	}
	children := []Node{txt(KindHeading, "section-heading "+st.headingSize.For(size), title)}
	switch cs.Type {
	case types.CustomSectionBullets:
		if lines := SplitBullets(cs.Content); len(lines) > 0 {
			children = append(children, bulletList(lines))
		}
	default:
		if cs.Content != "" {
			children = append(children, txt(KindText, "custom-text", cs.Content))
		}
	}
	n := section(types.SectionCustom, "custom", children...)
	n = n.With(AttrItemID, cs.ID)
	return n.With(AttrPlacement, string(ResolvePlacement(cs)))
}

// singleColumn lays out every visible section in order. The custom section
// position expands to all visible custom sections.
func singleColumn(doc *types.ResumeDocument, st style) []Node {
	var out []Node
	for _, s := range VisibleSections(doc.Sections) {
		if s.ID == types.SectionCustom {
			for _, cs := range VisibleCustomSections(doc) {
				out = append(out, customBlock(cs, st, doc.FontSize))
			}
			continue
		}
		if n, ok := block(doc, st, s.ID); ok {
			out = append(out, n)
		}
	}
	return out
}

// columnLayout is the static section-to-column mapping of a two-column template
type columnLayout struct {
	left       []string
	right      []string
	leftClass  string
	rightClass string
}

var sidebarColumns = columnLayout{
	left:  []string{types.SectionSkills, types.SectionEducation},
	right: []string{types.SectionSummary, types.SectionExperience, types.SectionProjects},
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// twoColumn builds the column pair. lead nodes are placed at the top of the left column.
func twoColumn(doc *types.ResumeDocument, st style, layout columnLayout, lead ...Node) Node {
	visible := VisibleSections(doc.Sections)
	leftCustom, rightCustom := PartitionCustom(doc)

	left := append([]Node{}, lead...)
	right := []Node{}
	for _, s := range visible {
		n, ok := block(doc, st, s.ID)
		if !ok {
			continue
		}
		switch {
		case contains(layout.left, s.ID):
			left = append(left, n.With(AttrColumn, string(types.PlacementLeft)))
		case contains(layout.right, s.ID):
			right = append(right, n.With(AttrColumn, string(types.PlacementRight)))
		}
	}
	for _, cs := range leftCustom {
		left = append(left, customBlock(cs, st, doc.FontSize).With(AttrColumn, string(types.PlacementLeft)))
	}
	for _, cs := range rightCustom {
		right = append(right, customBlock(cs, st, doc.FontSize).With(AttrColumn, string(types.PlacementRight)))
	}

	return el(KindGroup, "columns",
		el(KindColumn, "column-left "+layout.leftClass, left...).With(AttrColumn, string(types.PlacementLeft)),
		el(KindColumn, "column-right "+layout.rightClass, right...).With(AttrColumn, string(types.PlacementRight)),
	)
}
