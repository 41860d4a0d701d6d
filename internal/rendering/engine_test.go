package rendering

import (
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSections = []string{
	types.SectionSummary,
	types.SectionExperience,
	types.SectionProjects,
	types.SectionEducation,
	types.SectionSkills,
	types.SectionCustom,
}

func fullDocument() types.ResumeDocument {
	doc := types.NewDocument()
	doc.PersonalInfo = types.PersonalInfo{
		FullName: "Grace Hopper",
		JobTitle: "Staff Engineer",
		Email:    "grace@example.com",
		Phone:    "555-0100",
		Location: "Arlington, VA",
		GitHub:   "https://github.com/grace",
	}
	doc.Summary = "Compiler pioneer."
	doc.Experience = []types.Experience{
		{
			ID:           "exp-1",
			JobTitle:     "Engineer",
			Company:      "Navy",
			StartDate:    "2020-01",
			Current:      true,
			Description:  "Systems work",
			BulletPoints: []string{"Wrote COBOL", "  ", "Found a moth"},
		},
		{ID: "exp-2", JobTitle: "Intern", Company: "Harvard", StartDate: "2018-06", EndDate: "2019-08"},
	}
	doc.Education = []types.Education{
		{ID: "edu-1", Degree: "PhD Mathematics", Institution: "Yale", GraduationYear: "1934", GPA: "4.0"},
	}
	doc.Projects = []types.Project{
		{ID: "p-1", Title: "A-0", Description: "First compiler", Technologies: []string{"Assembly"}, StartDate: "2021-01", EndDate: "2021-06", LiveURL: "https://a0.dev"},
	}
	doc.Skills = types.Skills{
		Mode:   types.SkillsModeCategorized,
		Simple: []string{"COBOL"},
		Categorized: []types.SkillCategory{
			{ID: "c1", Name: "Languages", Skills: []string{"COBOL", "FORTRAN"}},
			{ID: "c2", Name: "Tools", Skills: []string{"UNIVAC"}},
		},
	}
	doc.CustomSections = []types.CustomSection{
		{ID: "cs-1", Title: "Awards", Content: "• Medal\n- Prize", Type: types.CustomSectionBullets, Visible: true, Order: 1},
		{ID: "cs-2", Title: "Interests", Content: "Sailing", Type: types.CustomSectionParagraph, Visible: true, Order: 2, Placement: types.PlacementLeft},
	}
	return doc
}

func templateIDs() []types.TemplateID {
	var ids []types.TemplateID
	for _, cfg := range types.Templates() {
		ids = append(ids, cfg.ID)
	}
	return ids
}

func hideSection(doc *types.ResumeDocument, id string) {
	for i := range doc.Sections {
		if doc.Sections[i].ID == id {
			doc.Sections[i].Visible = false
		}
	}
}

func TestRender_EveryTemplateRegistered(t *testing.T) {
	for _, id := range templateIDs() {
		r, ok := Lookup(id)
		require.True(t, ok, "missing renderer for %s", id)
		assert.Equal(t, id, r.ID())
	}
}

func TestRender_TemplateFallback(t *testing.T) {
	doc := fullDocument()
	doc.Template = "unknown-id"

	var res Result
	require.NotPanics(t, func() { res = Render(&doc) })
	assert.True(t, res.FellBack)
	assert.Equal(t, types.DefaultTemplate, res.Template)
	assert.Equal(t, types.TemplateID("unknown-id"), res.Requested)
	assert.NotEmpty(t, res.Reason)

	doc.Template = types.DefaultTemplate
	assert.Equal(t, Render(&doc).Tree, res.Tree)
}

func TestRender_NilDocument(t *testing.T) {
	require.NotPanics(t, func() {
		res := Render(nil)
		assert.Equal(t, types.DefaultTemplate, res.Template)
	})
}

func TestRender_Idempotent(t *testing.T) {
	for _, id := range templateIDs() {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument()
			doc.Template = id
			first := Render(&doc)
			second := Render(&doc)
			assert.Equal(t, first, second)
			assert.False(t, first.FellBack)
		})
	}
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	for _, id := range templateIDs() {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument()
			doc.Template = id
			doc.Sections[0], doc.Sections[3] = doc.Sections[3], doc.Sections[0]
			before := doc.Clone()
			Render(&doc)
			assert.Equal(t, before, doc)
		})
	}
}

func TestRender_HiddenSectionNeverAppears(t *testing.T) {
	for _, id := range templateIDs() {
		for _, hidden := range allSections {
			t.Run(string(id)+"/"+hidden, func(t *testing.T) {
				doc := fullDocument()
				doc.Template = id
				hideSection(&doc, hidden)

				tree := Render(&doc).Tree
				assert.NotContains(t, SectionIDs(tree), hidden)
				assert.Empty(t, FindSections(tree, hidden))
			})
		}
	}
}

func TestRender_VisibleSectionsAppear(t *testing.T) {
	for _, id := range templateIDs() {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument()
			doc.Template = id
			ids := SectionIDs(Render(&doc).Tree)

			for _, s := range []string{types.SectionExperience, types.SectionProjects, types.SectionEducation, types.SectionSkills, types.SectionCustom} {
				assert.Contains(t, ids, s)
			}
			if id != types.TemplateBJetProfessional {
				assert.Contains(t, ids, types.SectionSummary)
			}
		})
	}
}

func TestRender_OrderChangesOnlyPlacement(t *testing.T) {
	for _, id := range templateIDs() {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument()
			doc.Template = id
			reordered := doc.Clone()
			for i := range reordered.Sections {
				reordered.Sections[i].Order = len(reordered.Sections) - i
			}

			before := Render(&doc).Tree
			after := Render(&reordered).Tree

			for _, s := range allSections {
				assert.ElementsMatch(t, FindSections(before, s), FindSections(after, s), "section %s content changed", s)
			}
		})
	}
}

func TestRender_SingleColumnFollowsOrder(t *testing.T) {
	doc := fullDocument()
	doc.Template = types.TemplateBusinessProfessional
	for i := range doc.Sections {
		doc.Sections[i].Order = len(doc.Sections) - i
	}

	ids := SectionIDs(Render(&doc).Tree)
	assert.Equal(t, []string{
		types.SectionCustom,
		types.SectionCustom,
		types.SectionSkills,
		types.SectionEducation,
		types.SectionProjects,
		types.SectionExperience,
		types.SectionSummary,
	}, ids)
}

func TestRender_TwoColumnMapping(t *testing.T) {
	for _, id := range []types.TemplateID{types.TemplateTechSidebar, types.TemplateModernMinimal, types.TemplateCreativeModern} {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument()
			doc.Template = id
			tree := Render(&doc).Tree

			columnOf := func(section string) []string {
				var cols []string
				for _, n := range FindSections(tree, section) {
					cols = append(cols, n.Attr(AttrColumn))
				}
				return cols
			}
			assert.Equal(t, []string{"left"}, columnOf(types.SectionSkills))
			assert.Equal(t, []string{"left"}, columnOf(types.SectionEducation))
			assert.Equal(t, []string{"right"}, columnOf(types.SectionSummary))
			assert.Equal(t, []string{"right"}, columnOf(types.SectionExperience))
			assert.Equal(t, []string{"right"}, columnOf(types.SectionProjects))

			customs := FindSections(tree, types.SectionCustom)
			require.Len(t, customs, 2)
			placements := map[string]string{}
			for _, n := range customs {
				placements[n.Attr(AttrItemID)] = n.Attr(AttrColumn)
			}
			assert.Equal(t, "right", placements["cs-1"])
			assert.Equal(t, "left", placements["cs-2"])
		})
	}
}

func TestRender_HiddenCustomItem(t *testing.T) {
	doc := fullDocument()
	doc.CustomSections[0].Visible = false

	customs := FindSections(Render(&doc).Tree, types.SectionCustom)
	require.Len(t, customs, 1)
	assert.Equal(t, "cs-2", customs[0].Attr(AttrItemID))
}

func TestRender_ExperienceFormatting(t *testing.T) {
	doc := fullDocument()
	exp := FindSections(Render(&doc).Tree, types.SectionExperience)
	require.Len(t, exp, 1)

	texts := Texts(exp[0])
	assert.Contains(t, texts, "Jan 2020 - Present")
	assert.Contains(t, texts, "Jun 2018 - Aug 2019")
	assert.Contains(t, texts, "Wrote COBOL")
	assert.Contains(t, texts, "Found a moth")
	assert.NotContains(t, texts, "  ")
}

func TestRender_BulletCustomSection(t *testing.T) {
	doc := fullDocument()
	customs := FindSections(Render(&doc).Tree, types.SectionCustom)

	var awards Node
	for _, n := range customs {
		if n.Attr(AttrItemID) == "cs-1" {
			awards = n
		}
	}
	texts := Texts(awards)
	assert.Contains(t, texts, "AWARDS")
	assert.Contains(t, texts, "Medal")
	assert.Contains(t, texts, "Prize")
}

func TestRender_SimpleSkillsMode(t *testing.T) {
	doc := fullDocument()
	doc.Skills.Mode = types.SkillsModeSimple

	skills := FindSections(Render(&doc).Tree, types.SectionSkills)
	require.Len(t, skills, 1)
	texts := Texts(skills[0])
	assert.Contains(t, texts, "COBOL")
	assert.NotContains(t, texts, "Languages")
	assert.NotContains(t, texts, "UNIVAC")
}

func TestRender_NameFallback(t *testing.T) {
	doc := types.NewDocument()
	texts := Texts(Render(&doc).Tree)
	assert.Contains(t, texts, "Your Name")
	assert.Contains(t, texts, "Your Job Title")
}

func TestRender_FontScaleClass(t *testing.T) {
	doc := fullDocument()
	doc.FontSize = types.FontSizeLarge
	assert.Contains(t, Render(&doc).Tree.Class, "text-sm")

	doc.FontSize = "enormous"
	assert.Contains(t, Render(&doc).Tree.Class, "text-xs")

	doc.Template = types.TemplateBJetProfessional
	assert.Contains(t, Render(&doc).Tree.Class, "text-11px")
}

func TestRender_PartialEntriesDoNotPanic(t *testing.T) {
	doc := types.ResumeDocument{
		Experience: []types.Experience{{}},
		Education:  []types.Education{{}},
		Projects:   []types.Project{{}},
		Sections:   types.DefaultSections(),
	}
	for _, id := range templateIDs() {
		doc.Template = id
		assert.NotPanics(t, func() { Render(&doc) }, string(id))
	}
}

func TestRenderAs_UsesRequestedTemplate(t *testing.T) {
	doc := fullDocument()
	res := RenderAs(&doc, types.TemplateElegantTimeline)
	assert.Equal(t, types.TemplateElegantTimeline, res.Template)
	assert.Equal(t, "elegant-timeline", res.Tree.Attr("template"))
	assert.Equal(t, types.TemplateTechSidebar, doc.Template)
}
