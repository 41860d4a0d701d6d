package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
)

var heightScript = fmt.Sprintf(`document.getElementById(%q).scrollHeight`, rendering.PageElementID)

// Measurer measures the natural height of a rendered page in headless Chrome.
// It satisfies validation.Measurer.
type Measurer struct {
	opts Options
}

// NewMeasurer creates a browser-backed measurer
func NewMeasurer(opts Options) *Measurer {
	return &Measurer{opts: opts}
}

// Name identifies the measurement source in overflow reports
func (m *Measurer) Name() string { return "browser" }

// MeasureHeight lays out doc at page width and reads the page element's scroll height
func (m *Measurer) MeasureHeight(ctx context.Context, doc *types.ResumeDocument) (float64, error) {
	res := rendering.Render(doc)
	settings := validation.PageSettingsFor(doc)
	html, err := rendering.HTML(res.Tree, settings)
	if err != nil {
		return 0, err
	}

	var height float64
	err = run(ctx, m.opts,
		chromedp.EmulateViewport(int64(settings.WidthPx), int64(settings.HeightPx)),
		loadHTML(html),
		chromedp.Evaluate(heightScript, &height),
	)
	if err != nil {
		return 0, &Error{Message: "failed to measure page", Cause: err}
	}
	return height, nil
}

var _ validation.Measurer = (*Measurer)(nil)
