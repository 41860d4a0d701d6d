package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/skills"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTemplates(types.Templates())

	output := buf.String()
	assert.Contains(t, output, "TEMPLATES")
	assert.Contains(t, output, "tech-sidebar")
	assert.Contains(t, output, "B-JET Professional")
}

func TestPrintOverflowReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := validation.CheckOverflow(1300, types.PageFormatLetter)
	report.Source = "estimate"
	p.PrintOverflowReport(report)

	output := buf.String()
	assert.Contains(t, output, "letter")
	assert.Contains(t, output, "1300px")
	assert.Contains(t, output, "overflows")
	assert.Contains(t, output, "estimate")

	buf.Reset()
	p.PrintOverflowReport(validation.CheckOverflow(900, types.PageFormatA4))
	assert.Contains(t, buf.String(), "fits")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions([]types.Suggestion{
		{Type: types.SuggestionExperience, Title: "Quantify impact", Original: "Led team", Suggested: types.TextValue("Led team of 5")},
		{Type: types.SuggestionSkill, Title: "Add tools", Suggested: types.ListValue("Go", "gRPC")},
		{Type: types.SuggestionSkillReorg, Title: "Regroup", Suggested: types.CategoriesValue([]types.SkillCategory{{Name: "Backend", Skills: []string{"Go"}}})},
	})

	output := buf.String()
	assert.Contains(t, output, "SUGGESTIONS (3)")
	assert.Contains(t, output, "- Led team")
	assert.Contains(t, output, "+ Go, gRPC")
	assert.Contains(t, output, "Backend: Go")

	buf.Reset()
	p.PrintSuggestions(nil)
	assert.Contains(t, buf.String(), "No suggestions")
}

func TestPrintSkillDemand(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	counts := []skills.Count{{Name: "go", Count: 4}, {Name: "sql", Count: 3}, {Name: "k8s", Count: 2}, {Name: "aws", Count: 2}, {Name: "rust", Count: 1}, {Name: "vue", Count: 1}}
	p.PrintSkillDemand(counts)
	assert.Contains(t, buf.String(), "go")
	assert.Contains(t, buf.String(), "and 1 more")
	assert.NotContains(t, buf.String(), "vue")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
