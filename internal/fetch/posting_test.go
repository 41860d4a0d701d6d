package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postingServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func longPosting() string {
	return strings.Repeat("We are looking for an engineer who enjoys Go and distributed systems. ", 10)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("  short  "))
	assert.False(t, ShouldUseBrowser(longPosting()))
}

func TestJobPosting_HTTPOnly(t *testing.T) {
	server := postingServer(t, http.StatusOK, `<html><body><nav>Menu</nav><div class="job-description"><p>`+longPosting()+`</p></div></body></html>`)

	rendered := false
	render := func(context.Context, string) (string, error) {
		rendered = true
		return "", nil
	}

	result, err := JobPosting(context.Background(), server.URL, nil, render)
	require.NoError(t, err)
	assert.False(t, rendered, "long text needs no browser")
	assert.False(t, result.Rendered)
	assert.Contains(t, result.Text, "distributed systems")
	assert.NotContains(t, result.Text, "Menu")
	assert.Equal(t, PlatformUnknown, result.Platform)
}

func TestJobPosting_FallsBackToBrowser(t *testing.T) {
	server := postingServer(t, http.StatusOK, `<html><body><div id="root"></div></body></html>`)
	render := func(_ context.Context, url string) (string, error) {
		assert.Equal(t, server.URL, url)
		return `<html><body><main>` + longPosting() + `</main></body></html>`, nil
	}

	result, err := JobPosting(context.Background(), server.URL, nil, render)
	require.NoError(t, err)
	assert.True(t, result.Rendered)
	assert.Contains(t, result.Text, "engineer")
}

func TestJobPosting_RenderFailureKeepsHTTPText(t *testing.T) {
	server := postingServer(t, http.StatusOK, `<main><p>Short posting</p></main>`)
	render := func(context.Context, string) (string, error) { return "", errors.New("no chrome") }

	result, err := JobPosting(context.Background(), server.URL, nil, render)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", result.Text)
	assert.False(t, result.Rendered)
}

func TestJobPosting_HTTPErrorWithoutRenderer(t *testing.T) {
	server := postingServer(t, http.StatusForbidden, "blocked")

	_, err := JobPosting(context.Background(), server.URL, nil, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "403")
}

func TestJobPosting_HTTPErrorRecoveredByBrowser(t *testing.T) {
	server := postingServer(t, http.StatusForbidden, "blocked")
	render := func(context.Context, string) (string, error) {
		return `<main>` + longPosting() + `</main>`, nil
	}

	result, err := JobPosting(context.Background(), server.URL, nil, render)
	require.NoError(t, err)
	assert.True(t, result.Rendered)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestJobPosting_NothingAnywhere(t *testing.T) {
	server := postingServer(t, http.StatusForbidden, "blocked")
	render := func(context.Context, string) (string, error) { return "", errors.New("timeout") }

	_, err := JobPosting(context.Background(), server.URL, nil, render)
	assert.Error(t, err)
}

func TestJobPosting_InvalidURL(t *testing.T) {
	render := func(context.Context, string) (string, error) { return "<main>x</main>", nil }
	_, err := JobPosting(context.Background(), "not a url", nil, render)
	assert.Error(t, err)
}
