package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
	"github.com/spf13/cobra"
)

var (
	validateInput    string
	validateMeasurer string
	validateFormat   string
	validateStrict   bool
)

// errOverflow is returned in strict mode so the exit status reflects the check
var errOverflow = errors.New("content overflows the page")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a resume file fits on one page",
	Long: `Measure the rendered height of a resume and compare it against its page format.

The estimate measurer needs no browser. The browser measurer lays the page out in headless Chrome.
Overflow is advisory unless --strict is set.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to a portable resume file (required)")
	validateCmd.Flags().StringVarP(&validateMeasurer, "measurer", "m", "", "Measurer: estimate or browser (default: OVERFLOW_MEASURER)")
	validateCmd.Flags().StringVar(&validateFormat, "page-format", "", "Page format override: a4 or letter")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when content overflows")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := readDocument(validateInput)
	if err != nil {
		return err
	}
	if validateFormat != "" {
		format := types.PageFormat(strings.ToLower(validateFormat))
		if format != types.PageFormatLetter && format != types.PageFormatA4 {
			return fmt.Errorf("unknown page format %q (want a4 or letter)", validateFormat)
		}
		doc.PageFormat = format
	}

	m, err := newMeasurer(cfg, validateMeasurer)
	if err != nil {
		return err
	}

	report, err := validation.Check(context.Background(), m, doc)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintOverflowReport(report)

	if validateStrict && report.Overflow {
		return errOverflow
	}
	return nil
}

// newMeasurer picks a measurer by name, falling back to the configured one
func newMeasurer(cfg *config.Config, name string) (validation.Measurer, error) {
	if name == "" {
		name = cfg.Overflow.Measurer
	}
	switch name {
	case "", config.MeasurerEstimate:
		return validation.EstimateMeasurer{}, nil
	case config.MeasurerBrowser:
		return browser.NewMeasurer(browserOptions(cfg)), nil
	default:
		return nil, fmt.Errorf("unknown measurer %q (want estimate or browser)", name)
	}
}
