package fetch

import (
	"context"
	"log"
	"strings"
)

// MinContentLength is the shortest posting text accepted from a plain HTTP fetch.
// Shorter text usually means the page is rendered by JavaScript.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is too short to trust
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after scripts have run
type Renderer func(ctx context.Context, url string) (string, error)

// JobPosting fetches a job posting and extracts its description text with the
// platform's selectors. When the text is too short and render is set, the page is
// rendered in a browser and extracted again; a failed render keeps the HTTP text.
func JobPosting(ctx context.Context, urlStr string, opts *Options, render Renderer) (*Result, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	result, err := URL(ctx, urlStr, opts)
	if err != nil && render == nil {
		return nil, err
	}
	if result == nil {
		result = &Result{URL: urlStr, Platform: DetectPlatform(urlStr)}
	}

	if err == nil {
		result.Text, err = extractPosting(result.HTML, result.Platform)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
		}
	}
	if render == nil || !ShouldUseBrowser(result.Text) {
		return result, nil
	}

	log.Printf("[fetch] %s: %d chars from HTTP, rendering in browser", urlStr, len(result.Text))
	html, renderErr := render(ctx, urlStr)
	if renderErr != nil {
		if result.Text == "" {
			return nil, &Error{URL: urlStr, Message: "no content from HTTP or browser", Cause: renderErr}
		}
		log.Printf("[fetch] browser render failed, keeping HTTP text: %v", renderErr)
		return result, nil
	}

	text, err := extractPosting(html, result.Platform)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract rendered text", Cause: err}
	}
	if len(text) > len(result.Text) {
		result.HTML = html
		result.Text = text
		result.Rendered = true
	}
	return result, nil
}

func extractPosting(html string, platform Platform) (string, error) {
	return ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
}
