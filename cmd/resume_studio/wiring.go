package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/suggest"
	"github.com/jonathan/resume-studio/internal/types"
)

// loadConfig reads settings and applies the --verbose flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// llmConfig maps model settings onto the client config
func llmConfig(cfg config.LLMConfig) *llm.Config {
	c := llm.DefaultConfig()
	if cfg.Model != "" {
		c = c.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.LiteModel != "" {
		c = c.WithModel(llm.TierLite, cfg.LiteModel)
	}
	if cfg.Temperature > 0 {
		c.Temperature = cfg.Temperature
	}
	return c
}

func breakerConfig(cfg config.LLMConfig) llm.BreakerConfig {
	b := llm.DefaultBreakerConfig()
	if cfg.BreakerTimeout > 0 {
		b.Timeout = cfg.BreakerTimeout
	}
	if cfg.BreakerFailRatio > 0 {
		b.FailureThreshold = cfg.BreakerFailRatio
	}
	return b
}

// newSuggestService builds the configured suggestion backend. The returned
// closer releases the model client, if one was created.
func newSuggestService(ctx context.Context, cfg *config.Config) (suggest.Service, *llm.BreakerClient, func(), error) {
	noop := func() {}
	switch cfg.Suggest.Backend {
	case config.BackendHTTP:
		client := &http.Client{Timeout: cfg.Suggest.Timeout}
		return suggest.NewHTTPService(cfg.Suggest.BaseURL, client), nil, noop, nil
	default:
		if err := cfg.RequireLLM(); err != nil {
			return nil, nil, noop, err
		}
		client, err := llm.NewClient(ctx, llmConfig(cfg.LLM), cfg.LLM.APIKey, breakerConfig(cfg.LLM))
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to create LLM client: %w", err)
		}
		breaker, _ := client.(*llm.BreakerClient)
		closer := func() { _ = client.Close() }
		return suggest.NewLLMService(client), breaker, closer, nil
	}
}

// browserOptions maps browser settings onto chromedp options
func browserOptions(cfg *config.Config) browser.Options {
	opts := browser.DefaultOptions()
	if cfg.Browser.ChromePath != "" {
		opts.ExecPath = cfg.Browser.ChromePath
	}
	if cfg.Browser.Timeout > 0 {
		opts.Timeout = cfg.Browser.Timeout
	}
	opts.Verbose = cfg.Verbose
	return opts
}

// readDocument loads a portable resume file
func readDocument(path string) (*types.ResumeDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := portable.ImportReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return doc, nil
}
