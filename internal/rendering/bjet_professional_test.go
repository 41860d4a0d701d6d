package rendering

import (
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bjetDocument() types.ResumeDocument {
	doc := fullDocument()
	doc.Template = types.TemplateBJetProfessional
	return doc
}

func TestBJet_BasicInfoAlwaysPresent(t *testing.T) {
	doc := bjetDocument()
	tree := Render(&doc).Tree

	var info Node
	Walk(tree, func(n Node) bool {
		if n.Attr(AttrBlock) == "basic-info" {
			info = n
			return false
		}
		return true
	})
	texts := Texts(info)
	assert.Contains(t, texts, "Basic Information 基本情報")
	assert.Contains(t, texts, "Grace Hopper")
	assert.Contains(t, texts, "Contact Number")
	assert.Contains(t, texts, "https://github.com/grace")
	assert.NotContains(t, texts, "Birth date")
}

func TestBJet_DottedDates(t *testing.T) {
	doc := bjetDocument()
	exp := FindSections(Render(&doc).Tree, types.SectionExperience)
	require.Len(t, exp, 1)
	texts := Texts(exp[0])
	assert.Contains(t, texts, "2020.01 - Present")
	assert.Contains(t, texts, "2018.06 - 2019.08")
}

func TestBJet_SkillsMatrixCapsCategories(t *testing.T) {
	doc := bjetDocument()
	doc.Skills.Categorized = []types.SkillCategory{
		{ID: "1", Name: "One", Skills: []string{"a", "b", "c"}},
		{ID: "2", Name: "Two", Skills: []string{"d"}},
		{ID: "3", Name: "Three"},
		{ID: "4", Name: "Four", Skills: []string{"e"}},
		{ID: "5", Name: "Five", Skills: []string{"f"}},
	}

	skills := FindSections(Render(&doc).Tree, types.SectionSkills)
	require.Len(t, skills, 1)

	var matrix Node
	for _, c := range skills[0].Children {
		if c.Kind == KindTable {
			matrix = c
		}
	}
	require.Len(t, matrix.Children, 4, "header row plus the deepest category")
	assert.Len(t, matrix.Children[0].Children, 8)
	assert.Equal(t, "One", matrix.Children[0].Children[0].Text)
	assert.Equal(t, "Skill Level", matrix.Children[0].Children[1].Text)
	assert.NotContains(t, Texts(skills[0]), "Five")

	second := matrix.Children[2].Children
	assert.Equal(t, "b", second[0].Text)
	assert.Equal(t, "B", second[1].Text)
	assert.Equal(t, "", second[2].Text)
	assert.Equal(t, "", second[3].Text)
}

func TestBJet_SimpleSkillsBecomeOneColumn(t *testing.T) {
	doc := bjetDocument()
	doc.Skills.Mode = types.SkillsModeSimple

	skills := FindSections(Render(&doc).Tree, types.SectionSkills)
	require.Len(t, skills, 1)
	texts := Texts(skills[0])
	assert.Contains(t, texts, "Skills")
	assert.Contains(t, texts, "COBOL")
	assert.NotContains(t, texts, "Languages")
}

func TestBJet_CustomGrouping(t *testing.T) {
	doc := bjetDocument()
	doc.CustomSections = []types.CustomSection{
		{ID: "other", Title: "Volunteering", Content: "Food bank", Visible: true},
		{ID: "ach", Title: "Special Achievements", Content: "Award", Visible: true},
		{ID: "lang", Title: "LANGUAGE Skills", Content: "Japanese N2", Visible: true},
		{ID: "train", Title: "Training Programs", Content: "B-JET", Visible: true},
		{ID: "both", Title: "Language Training", Content: "Immersion", Visible: true},
		{ID: "cert", Title: "Certifications", Content: "CKA", Visible: false},
	}

	customs := FindSections(Render(&doc).Tree, types.SectionCustom)
	var order []string
	for _, n := range customs {
		order = append(order, n.Attr(AttrItemID))
	}
	// "Language Training" matches training first and is rendered once
	assert.Equal(t, []string{"train", "both", "lang", "ach", "other"}, order)
	assert.Equal(t, "training", customs[1].Attr("group"))
	assert.Equal(t, "", customs[4].Attr("group"))
}

func TestBJet_FixedOrderIgnoresSectionOrder(t *testing.T) {
	doc := bjetDocument()
	for i := range doc.Sections {
		doc.Sections[i].Order = len(doc.Sections) - i
	}

	ids := SectionIDs(Render(&doc).Tree)
	assert.Equal(t, []string{
		types.SectionEducation,
		types.SectionExperience,
		types.SectionSkills,
		types.SectionProjects,
		types.SectionCustom,
		types.SectionCustom,
	}, ids)
}
