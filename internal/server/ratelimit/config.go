package ratelimit

import (
	"time"

	"github.com/jonathan/resume-studio/internal/config"
)

// EndpointConfig is the limit for one endpoint.
type EndpointConfig struct {
	Path   string        // exact path, prefix ending in "/", or segments with "*" wildcards
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds a limiter config from application settings.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       config.ParseIPList(s.Whitelist),
		Blacklist:       config.ParseIPList(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model and browser calls
		{Path: "/api/suggestions", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/api/extract", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/chat", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/save", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/pdf", Method: "GET", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/job-description/fetch", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},

		// Tier 2: writes
		{Path: "/sessions", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/applications", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/applications/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/render/gallery", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},

		// reads fall through to the default limit; health and metrics are unlimited
	}
}
