package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var (
	pdfInput    string
	pdfTemplate string
	pdfOutput   string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Print a resume file to PDF with headless Chrome",
	RunE:  runPDF,
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfInput, "in", "i", "", "Path to a portable resume file (required)")
	pdfCmd.Flags().StringVarP(&pdfTemplate, "template", "t", "", "Template id (default: the file's template)")
	pdfCmd.Flags().StringVarP(&pdfOutput, "out", "o", "", "Output PDF path (default: resume-YYYY-MM-DD.pdf)")

	if err := pdfCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(pdfCmd)
}

func runPDF(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := readDocument(pdfInput)
	if err != nil {
		return err
	}
	if pdfTemplate != "" {
		doc.Template = types.TemplateID(pdfTemplate)
	}

	data, err := browser.PrintDocument(context.Background(), doc, browserOptions(cfg))
	if err != nil {
		return err
	}

	out := pdfOutput
	if out == "" {
		out = fmt.Sprintf("resume-%s.pdf", time.Now().Format("2006-01-02"))
	}
	return writeOutput(out, data)
}
