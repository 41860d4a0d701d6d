package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test in an empty directory so no stray config file is found
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendLLM, cfg.Suggest.Backend)
	assert.Equal(t, MeasurerEstimate, cfg.Overflow.Measurer)
	assert.Equal(t, 500*time.Millisecond, cfg.Overflow.Debounce)
	assert.Equal(t, 90*time.Second, cfg.Suggest.Timeout)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1000, cfg.RateLimit.DefaultLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/resume")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("OVERFLOW_DEBOUNCE", "250ms")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/resume", cfg.Database.URL)
	assert.Equal(t, "key", cfg.LLM.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Overflow.Debounce)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.RequireDatabase())
	assert.NoError(t, cfg.RequireLLM())
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	content := `server:
  port: 7000
suggest:
  backend: http
  base_url: http://localhost:5000
browser:
  enabled: true
overflow:
  measurer: browser
`
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, BackendHTTP, cfg.Suggest.Backend)
	assert.Equal(t, "http://localhost:5000", cfg.Suggest.BaseURL)
	assert.Equal(t, MeasurerBrowser, cfg.Overflow.Measurer)
	assert.NoError(t, cfg.RequireLLM(), "the http backend needs no API key")
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume_studio.json"), []byte(`{"verbose": true}`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ invalid json }`), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		LLM:       LLMConfig{Temperature: 0.2, BreakerFailRatio: 0.6},
		Suggest:   SuggestConfig{Backend: BackendLLM},
		Overflow:  OverflowConfig{Measurer: MeasurerEstimate},
		Sessions:  SessionsConfig{MaxSessions: 10},
		RateLimit: RateLimitConfig{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"backend", func(c *Config) { c.Suggest.Backend = "grpc" }, "unknown suggest backend"},
		{"http without url", func(c *Config) { c.Suggest.Backend = BackendHTTP }, "base_url"},
		{"measurer", func(c *Config) { c.Overflow.Measurer = "ruler" }, "unknown overflow measurer"},
		{"browser measurer disabled", func(c *Config) { c.Overflow.Measurer = MeasurerBrowser }, "browser.enabled"},
		{"temperature", func(c *Config) { c.LLM.Temperature = 3 }, "temperature"},
		{"fail ratio", func(c *Config) { c.LLM.BreakerFailRatio = 0 }, "breaker_fail_ratio"},
		{"sessions", func(c *Config) { c.Sessions.MaxSessions = 0 }, "max_sessions"},
		{"rate limit", func(c *Config) { c.RateLimit.DefaultLimit = 0 }, "rate limit"},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRequireFeatures(t *testing.T) {
	cfg := validConfig()
	assert.ErrorContains(t, cfg.RequireDatabase(), "DATABASE_URL")
	assert.ErrorContains(t, cfg.RequireLLM(), "GEMINI_API_KEY")
}

func TestParseIPList(t *testing.T) {
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, ParseIPList(" 10.0.0.1, ,10.0.0.2"))
	assert.Empty(t, ParseIPList(""))
}
