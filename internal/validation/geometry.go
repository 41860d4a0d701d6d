package validation

import (
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

// Default preview container, in CSS pixels
const (
	DefaultContainerWidth  = 860
	DefaultContainerHeight = 650
)

// Page content styling shared by the HTML writer and the height estimator
const (
	PagePaddingIn  = 0.75
	BaseFontSizePx = 11.0
	BaseLineHeight = 1.35
	pxPerInch      = 96.0
)

// PageSize is a physical page in CSS pixels at 96dpi
type PageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var pageSizes = map[types.PageFormat]PageSize{
	types.PageFormatLetter: {Width: 816, Height: 1056},
	types.PageFormatA4:     {Width: 794, Height: 1123},
}

// Dimensions returns the page size for format. Unknown formats use Letter.
func Dimensions(format types.PageFormat) PageSize {
	if size, ok := pageSizes[format]; ok {
		return size
	}
	return pageSizes[types.PageFormatLetter]
}

// FitScale returns the factor that fits a whole page inside the container.
// The result is not clamped and may exceed 1.
func FitScale(format types.PageFormat, containerWidth, containerHeight float64) float64 {
	size := Dimensions(format)
	sx := containerWidth / float64(size.Width)
	sy := containerHeight / float64(size.Height)
	if sx < sy {
		return sx
	}
	return sy
}

// Layout is the preview geometry reported to clients
type Layout struct {
	Format types.PageFormat `json:"pageFormat"`
	Page   PageSize         `json:"page"`
	Scale  float64          `json:"scale"`
}

// ComputeLayout returns the page size and fit scale for a container
func ComputeLayout(format types.PageFormat, containerWidth, containerHeight float64) Layout {
	return Layout{
		Format: format,
		Page:   Dimensions(format),
		Scale:  FitScale(format, containerWidth, containerHeight),
	}
}

// PageSettingsFor returns the HTML page settings for doc
func PageSettingsFor(doc *types.ResumeDocument) rendering.PageSettings {
	size := Dimensions(doc.PageFormat)
	return rendering.PageSettings{
		Title:      pageTitle(doc),
		Format:     doc.PageFormat,
		WidthPx:    size.Width,
		HeightPx:   size.Height,
		PaddingIn:  PagePaddingIn,
		FontSizePx: BaseFontSizePx,
		LineHeight: BaseLineHeight,
		Colors:     doc.Colors,
		FontFamily: doc.FontFamily,
	}
}

func pageTitle(doc *types.ResumeDocument) string {
	if doc.PersonalInfo.FullName != "" {
		return doc.PersonalInfo.FullName + " - Resume"
	}
	return "Resume"
}
