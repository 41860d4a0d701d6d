package validation

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// average glyph advance as a fraction of the font size
	charWidthRatio = 0.52
	blockMargin    = 4.0
	columnGap      = 16.0
	leftColumnFrac = 0.30
	tagPaddingPx   = 16.0
	imageHeightPx  = 120.0
	headingFactor  = 1.3
	cellPaddingPx  = 8.0
)

// EstimateHeight approximates the natural content height of a laid-out tree on
// the given page format without a browser. Text wraps by average glyph width;
// columns take the taller side and table rows the tallest cell.
func EstimateHeight(tree rendering.Node, format types.PageFormat) float64 {
	size := Dimensions(format)
	padding := PagePaddingIn * pxPerInch
	width := float64(size.Width) - 2*padding
	e := estimator{
		lineHeight: BaseFontSizePx * BaseLineHeight,
		charWidth:  BaseFontSizePx * charWidthRatio,
	}
	return e.height(tree, width) + 2*padding
}

type estimator struct {
	lineHeight float64
	charWidth  float64
}

func (e estimator) lines(text string, width float64) float64 {
	if text == "" {
		return 0
	}
	perLine := math.Max(1, math.Floor(width/e.charWidth))
	total := 0.0
	for _, para := range strings.Split(text, "\n") {
		n := float64(utf8.RuneCountInString(para))
		total += math.Max(1, math.Ceil(n/perLine))
	}
	return total
}

func (e estimator) height(n rendering.Node, width float64) float64 {
	switch n.Kind {
	case rendering.KindHeading:
		return e.lines(n.Text, width)*e.lineHeight*headingFactor + blockMargin
	case rendering.KindText, rendering.KindLink, rendering.KindTag:
		return e.lines(n.Text, width)*e.lineHeight + blockMargin
	case rendering.KindImage:
		return imageHeightPx + blockMargin
	case rendering.KindTable:
		total := 0.0
		for _, row := range n.Children {
			total += e.row(row, width)
		}
		return total + blockMargin
	case rendering.KindRow:
		return e.row(n, width)
	case rendering.KindItem:
		h := e.lines(n.Text, width) * e.lineHeight
		return h + e.stack(n.Children, width)
	}

	if strings.HasPrefix(n.Class, "columns") && len(n.Children) == 2 {
		left := (width - columnGap) * leftColumnFrac
		right := width - columnGap - left
		return math.Max(e.height(n.Children[0], left), e.height(n.Children[1], right))
	}
	if isTagGroup(n) {
		return e.tags(n, width)
	}
	h := 0.0
	if n.Text != "" {
		h += e.lines(n.Text, width) * e.lineHeight
	}
	return h + e.stack(n.Children, width)
}

func (e estimator) stack(children []rendering.Node, width float64) float64 {
	total := 0.0
	for _, c := range children {
		total += e.height(c, width)
	}
	return total
}

func (e estimator) row(row rendering.Node, width float64) float64 {
	if len(row.Children) == 0 {
		return 0
	}
	cellWidth := width/float64(len(row.Children)) - cellPaddingPx
	tallest := e.lineHeight
	for _, cell := range row.Children {
		h := e.lines(cell.Text, cellWidth)*e.lineHeight + e.stack(cell.Children, cellWidth)
		tallest = math.Max(tallest, h)
	}
	return tallest + cellPaddingPx
}

// tags flows inline tag chips left to right, wrapping at width
func (e estimator) tags(n rendering.Node, width float64) float64 {
	rows, used := 1.0, 0.0
	for _, c := range n.Children {
		w := float64(utf8.RuneCountInString(c.Text))*e.charWidth + tagPaddingPx
		if used > 0 && used+w > width {
			rows++
			used = 0
		}
		used += w
	}
	return rows*(e.lineHeight+blockMargin) + blockMargin
}

func isTagGroup(n rendering.Node) bool {
	if n.Kind != rendering.KindGroup || len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if c.Kind != rendering.KindTag {
			return false
		}
	}
	return true
}

// EstimateMeasurer measures documents with EstimateHeight
type EstimateMeasurer struct{}

// Name identifies the measurement source in reports
func (EstimateMeasurer) Name() string { return "estimate" }

// MeasureHeight renders doc and estimates its height
func (EstimateMeasurer) MeasureHeight(_ context.Context, doc *types.ResumeDocument) (float64, error) {
	res := rendering.Render(doc)
	return EstimateHeight(res.Tree, doc.PageFormat), nil
}
