package validation

import (
	"context"

	"github.com/jonathan/resume-studio/internal/types"
)

// OverflowTolerance is the fraction of a page content may exceed before it counts as overflow
const OverflowTolerance = 0.10

// OverflowReport is the advisory result of an overflow check
type OverflowReport struct {
	PageFormat    types.PageFormat `json:"pageFormat"`
	PageHeight    int              `json:"pageHeight"`
	ContentHeight float64          `json:"contentHeight"`
	Limit         float64          `json:"limit"`
	Overflow      bool             `json:"overflow"`
	Pages         float64          `json:"pages"` // content height in page units
	Source        string           `json:"source,omitempty"`
}

// OverflowLimit returns the largest content height that still fits format
func OverflowLimit(format types.PageFormat) float64 {
	return float64(Dimensions(format).Height) * (1 + OverflowTolerance)
}

// CheckOverflow compares a natural content height against the page height.
// Content exactly at the limit does not overflow.
func CheckOverflow(contentHeight float64, format types.PageFormat) OverflowReport {
	size := Dimensions(format)
	limit := OverflowLimit(format)
	return OverflowReport{
		PageFormat:    format,
		PageHeight:    size.Height,
		ContentHeight: contentHeight,
		Limit:         limit,
		Overflow:      contentHeight > limit,
		Pages:         contentHeight / float64(size.Height),
	}
}

// Measurer reports the natural height of a document's rendered content in CSS pixels
type Measurer interface {
	MeasureHeight(ctx context.Context, doc *types.ResumeDocument) (float64, error)
}

// Check measures doc and returns its overflow report
func Check(ctx context.Context, m Measurer, doc *types.ResumeDocument) (OverflowReport, error) {
	height, err := m.MeasureHeight(ctx, doc)
	if err != nil {
		return OverflowReport{}, &MeasureError{Message: "failed to measure content height", Cause: err}
	}
	report := CheckOverflow(height, doc.PageFormat)
	if named, ok := m.(interface{ Name() string }); ok {
		report.Source = named.Name()
	}
	return report, nil
}
