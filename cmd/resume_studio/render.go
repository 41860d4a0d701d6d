package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

var (
	renderInput    string
	renderTemplate string
	renderFormat   string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Lay out a resume file with a template",
	Long: `Render a portable resume file into a layout tree (json) or a standalone HTML page (html).

The template defaults to the one named in the file. Unknown templates fall back to the default.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to a portable resume file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (default: the file's template)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", formatJSON, "Output format: json or html")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default: stdout)")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	doc, err := readDocument(renderInput)
	if err != nil {
		return err
	}

	out, err := renderDocument(doc, types.TemplateID(renderTemplate), renderFormat)
	if err != nil {
		return err
	}
	return writeOutput(renderOutput, out)
}

// renderDocument lays out doc and encodes the result in format
func renderDocument(doc *types.ResumeDocument, template types.TemplateID, format string) ([]byte, error) {
	if template != "" {
		doc.Template = template
	}
	res := rendering.Render(doc)
	if res.FellBack {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", res.Reason)
	}

	switch format {
	case formatJSON:
		return json.MarshalIndent(res, "", "  ")
	case formatHTML:
		page, err := rendering.HTML(res.Tree, validation.PageSettingsFor(doc))
		if err != nil {
			return nil, err
		}
		return []byte(page), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or html)", format)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
