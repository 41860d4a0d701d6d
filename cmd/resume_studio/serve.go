package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-studio/internal/applications"
	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server for editing sessions, rendering, suggestions and saved applications.

Saved applications need DATABASE_URL. Suggestions need GEMINI_API_KEY, or SUGGEST_BACKEND=http
with SUGGEST_BASE_URL. PDF printing and browser-measured overflow need BROWSER_ENABLED=true.
Features whose dependencies are missing answer 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx := context.Background()
	deps := server.Deps{
		Metrics:      observability.NewMetrics(),
		HealthChecks: map[string]server.HealthCheck{},
	}

	svc, breaker, closeLLM, err := newSuggestService(ctx, cfg)
	if err != nil {
		log.Printf("[serve] suggestions disabled: %v", err)
	} else {
		defer closeLLM()
		deps.Suggest = svc
		if breaker != nil {
			deps.HealthChecks["llm"] = func(context.Context) error {
				if !breaker.Healthy() {
					return fmt.Errorf("circuit %s", breaker.State())
				}
				return nil
			}
		}
	}

	if err := cfg.RequireDatabase(); err != nil {
		log.Printf("[serve] saved applications disabled: %v", err)
	} else {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		deps.Applications = applications.NewService(database, deps.Suggest)
		deps.HealthChecks["database"] = database.Ping
	}

	if cfg.Browser.Enabled {
		opts := browserOptions(cfg)
		deps.PrintPDF = func(ctx context.Context, doc *types.ResumeDocument) ([]byte, error) {
			return browser.PrintDocument(ctx, doc, opts)
		}
		deps.RenderPage = func(ctx context.Context, url string) (string, error) {
			return browser.RenderURL(ctx, url, opts)
		}
		if cfg.Overflow.Measurer == config.MeasurerBrowser {
			deps.Measurer = browser.NewMeasurer(opts)
		}
	}

	srv := server.New(server.ConfigFrom(cfg), deps)
	return srv.Start()
}
