package browser

import (
	"context"
	"log"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
)

const pxPerInch = 96.0

// PaperSize returns the paper width and height in inches for format
func PaperSize(format types.PageFormat) (width, height float64) {
	size := validation.Dimensions(format)
	return float64(size.Width) / pxPerInch, float64(size.Height) / pxPerInch
}

// PrintPDF prints a standalone HTML page to PDF on paper matching format
func PrintPDF(ctx context.Context, html string, format types.PageFormat, opts Options) ([]byte, error) {
	width, height := PaperSize(format)

	var pdf []byte
	err := run(ctx, opts,
		loadHTML(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Message: "failed to print PDF", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Printed PDF (%s): %d bytes", format, len(pdf))
	}
	return pdf, nil
}

// PrintDocument lays out doc with its template and prints it
func PrintDocument(ctx context.Context, doc *types.ResumeDocument, opts Options) ([]byte, error) {
	res := rendering.Render(doc)
	html, err := rendering.HTML(res.Tree, validation.PageSettingsFor(doc))
	if err != nil {
		return nil, err
	}
	return PrintPDF(ctx, html, doc.PageFormat, opts)
}
