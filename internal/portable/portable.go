// Package portable reads and writes the self-contained resume JSON file format.
package portable

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// MaxFileSize bounds an imported file. Profile images are inlined, so files can be large.
const MaxFileSize = 10 << 20

// Export serializes doc as indented JSON
func Export(doc *types.ResumeDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Filename returns the suggested export file name for a given day
func Filename(t time.Time) string {
	return "resume-" + t.Format("2006-01-02") + ".json"
}

// Import parses a portable file. The document is only returned when the whole file
// is valid; callers never see a partially decoded document.
func Import(data []byte) (*types.ResumeDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &FormatError{Message: "file is empty"}
	}
	if !json.Valid(trimmed) {
		return nil, &FormatError{Message: "file is not valid JSON"}
	}

	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &FormatError{Message: "top-level value is not an object", Cause: err}
	}
	if !types.HasRequiredShape(raw) {
		return nil, &FormatError{Message: "personalInfo, sections and colors are required"}
	}
	if err := schemas.ValidateResume(trimmed); err != nil {
		return nil, &FormatError{Message: "document does not match the resume format", Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &FormatError{Message: "failed to decode document", Cause: err}
	}
	fillEmptyLists(&doc)
	return &doc, nil
}

// ImportReader reads and parses a portable file, rejecting files over MaxFileSize
func ImportReader(r io.Reader) (*types.ResumeDocument, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, &FormatError{Message: "failed to read file", Cause: err}
	}
	if len(data) > MaxFileSize {
		return nil, &FormatError{Message: "file is too large"}
	}
	return Import(data)
}

// fillEmptyLists replaces absent lists with empty ones so re-export writes [] rather than null
func fillEmptyLists(doc *types.ResumeDocument) {
	if doc.Experience == nil {
		doc.Experience = []types.Experience{}
	}
	if doc.Education == nil {
		doc.Education = []types.Education{}
	}
	if doc.Projects == nil {
		doc.Projects = []types.Project{}
	}
	if doc.CustomSections == nil {
		doc.CustomSections = []types.CustomSection{}
	}
	if doc.Skills.Simple == nil {
		doc.Skills.Simple = []string{}
	}
	if doc.Skills.Categorized == nil {
		doc.Skills.Categorized = []types.SkillCategory{}
	}
	if doc.Skills.Mode == "" {
		doc.Skills.Mode = types.SkillsModeSimple
	}
}
