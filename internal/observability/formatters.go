// Package observability provides Prometheus metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-studio/internal/skills"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes human-readable summaries for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintTemplates lists the template catalog
func (p *Printer) PrintTemplates(templates []types.TemplateConfig) {
	var sb strings.Builder
	for i, t := range templates {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%s)\n", t.Name, t.ID))
		sb.WriteString(fmt.Sprintf("  %s, %s, %s\n", t.Category, t.Layout, t.FontFamily))
		sb.WriteString(fmt.Sprintf("  %s\n", t.Description))
	}
	p.printBox("TEMPLATES", sb.String())
}

// PrintOverflowReport outputs the page fit of a document
func (p *Printer) PrintOverflowReport(report validation.OverflowReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:     %s (%dpx tall)\n", report.PageFormat, report.PageHeight))
	sb.WriteString(fmt.Sprintf("Content:  %.0fpx (%.2f pages)\n", report.ContentHeight, report.Pages))
	sb.WriteString(fmt.Sprintf("Limit:    %.0fpx\n", report.Limit))
	if report.Source != "" {
		sb.WriteString(fmt.Sprintf("Measured: %s\n", report.Source))
	}
	if report.Overflow {
		sb.WriteString("\n⚠ Content overflows the page")
	} else {
		sb.WriteString("\n✓ Content fits the page")
	}
	p.printBox("PAGE FIT", sb.String())
}

// PrintSuggestions outputs a suggestion list, grouped by type
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("SUGGESTIONS", "No suggestions")
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", s.Type, s.Title))
		if s.Original != "" {
			sb.WriteString(fmt.Sprintf("  - %s\n", s.Original))
		}
		sb.WriteString(fmt.Sprintf("  + %s\n", formatSuggested(s.Suggested)))
	}
	p.printBox(fmt.Sprintf("SUGGESTIONS (%d)", len(suggestions)), sb.String())
}

func formatSuggested(v types.SuggestedValue) string {
	switch v.Kind {
	case types.SuggestedText:
		return v.Text
	case types.SuggestedList:
		return strings.Join(v.List, ", ")
	case types.SuggestedCategories:
		parts := make([]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			parts = append(parts, fmt.Sprintf("%s: %s", c.Name, strings.Join(c.Skills, ", ")))
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

// PrintSkillDemand outputs the most requested skills across saved applications
func (p *Printer) PrintSkillDemand(counts []skills.Count) {
	if len(counts) == 0 {
		p.printBox("SKILL DEMAND", "No saved applications")
		return
	}

	var sb strings.Builder
	shown := min(len(counts), maxItemsToShow)
	for _, c := range counts[:shown] {
		sb.WriteString(fmt.Sprintf("  • %-30s %d\n", c.Name, c.Count))
	}
	if len(counts) > shown {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(counts)-shown))
	}
	p.printBox("SKILL DEMAND", sb.String())
}
