// Package config loads resume studio settings from an optional config file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration. Every field has a default;
// DATABASE_URL and GEMINI_API_KEY are only required by the features that use them.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Suggest   SuggestConfig   `mapstructure:"suggest"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Overflow  OverflowConfig  `mapstructure:"overflow"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Verbose   bool            `mapstructure:"verbose"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigin   string        `mapstructure:"cors_origin"`
}

// DatabaseConfig holds the PostgreSQL connection string
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LLMConfig configures the Gemini client and its circuit breaker
type LLMConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	LiteModel        string        `mapstructure:"lite_model"`
	Temperature      float32       `mapstructure:"temperature"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
	BreakerFailRatio float64       `mapstructure:"breaker_fail_ratio"`
}

// Suggestion backends
const (
	BackendLLM  = "llm"
	BackendHTTP = "http"
)

// SuggestConfig selects where suggestions come from
type SuggestConfig struct {
	Backend string        `mapstructure:"backend"`
	BaseURL string        `mapstructure:"base_url"` // for the http backend
	Timeout time.Duration `mapstructure:"timeout"`
}

// BrowserConfig configures headless Chrome
type BrowserConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Overflow measurers
const (
	MeasurerEstimate = "estimate"
	MeasurerBrowser  = "browser"
)

// OverflowConfig configures the live overflow check
type OverflowConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Measurer string        `mapstructure:"measurer"`
}

// SessionsConfig bounds the in-memory editing sessions
type SessionsConfig struct {
	IdleTTL     time.Duration `mapstructure:"idle_ttl"`
	MaxSessions int           `mapstructure:"max_sessions"`
}

// RateLimitConfig configures per-client request limits
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       string        `mapstructure:"whitelist"` // comma separated IPs
	Blacklist       string        `mapstructure:"blacklist"`
}

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.cors_origin":         "CORS_ORIGIN",
	"database.url":               "DATABASE_URL",
	"llm.api_key":                "GEMINI_API_KEY",
	"llm.model":                  "GEMINI_MODEL",
	"llm.lite_model":             "GEMINI_LITE_MODEL",
	"suggest.backend":            "SUGGEST_BACKEND",
	"suggest.base_url":           "SUGGEST_BASE_URL",
	"suggest.timeout":            "SUGGEST_TIMEOUT",
	"browser.enabled":            "BROWSER_ENABLED",
	"browser.chrome_path":        "CHROME_PATH",
	"overflow.debounce":          "OVERFLOW_DEBOUNCE",
	"overflow.measurer":          "OVERFLOW_MEASURER",
	"sessions.idle_ttl":          "SESSION_IDLE_TTL",
	"sessions.max_sessions":      "SESSION_MAX",
	"ratelimit.enabled":          "RATE_LIMIT_ENABLED",
	"ratelimit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"ratelimit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"ratelimit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"ratelimit.whitelist":        "RATE_LIMIT_WHITELIST",
	"ratelimit.blacklist":        "RATE_LIMIT_BLACKLIST",
	"verbose":                    "VERBOSE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.lite_model", "gemini-2.5-flash-lite")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.breaker_timeout", 30*time.Second)
	v.SetDefault("llm.breaker_fail_ratio", 0.6)
	v.SetDefault("suggest.backend", BackendLLM)
	v.SetDefault("suggest.timeout", 90*time.Second)
	v.SetDefault("browser.enabled", false)
	v.SetDefault("browser.timeout", 60*time.Second)
	v.SetDefault("overflow.debounce", 500*time.Millisecond)
	v.SetDefault("overflow.measurer", MeasurerEstimate)
	v.SetDefault("sessions.idle_ttl", 2*time.Hour)
	v.SetDefault("sessions.max_sessions", 1000)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_limit", 1000)
	v.SetDefault("ratelimit.default_window", time.Minute)
	v.SetDefault("ratelimit.cleanup_interval", 5*time.Minute)
	v.SetDefault("verbose", false)
}

// Load reads configuration from path, or from resume_studio.{yaml,json} in the
// working directory when path is empty and such a file exists. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resume_studio")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server port %d out of range", c.Server.Port)
	}
	switch c.Suggest.Backend {
	case BackendLLM:
	case BackendHTTP:
		if c.Suggest.BaseURL == "" {
			return errors.New("config error: suggest.base_url is required for the http backend")
		}
	default:
		return fmt.Errorf("config error: unknown suggest backend %q", c.Suggest.Backend)
	}
	switch c.Overflow.Measurer {
	case MeasurerEstimate:
	case MeasurerBrowser:
		if !c.Browser.Enabled {
			return errors.New("config error: the browser measurer needs browser.enabled")
		}
	default:
		return fmt.Errorf("config error: unknown overflow measurer %q", c.Overflow.Measurer)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("config error: llm.temperature must be between 0 and 2")
	}
	if c.LLM.BreakerFailRatio <= 0 || c.LLM.BreakerFailRatio > 1 {
		return errors.New("config error: llm.breaker_fail_ratio must be in (0, 1]")
	}
	if c.Sessions.MaxSessions <= 0 {
		return errors.New("config error: sessions.max_sessions must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit <= 0 || c.RateLimit.DefaultWindow <= 0) {
		return errors.New("config error: rate limit and window must be positive")
	}
	return nil
}

// RequireDatabase returns an error when no database URL is configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	return nil
}

// RequireLLM returns an error when the llm backend is selected without an API key
func (c *Config) RequireLLM() error {
	if c.Suggest.Backend == BackendLLM && c.LLM.APIKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required")
	}
	return nil
}

// ParseIPList splits a comma separated IP list into a set
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
