package main

import (
	"context"
	"os"

	"github.com/jonathan/resume-studio/internal/applications"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/spf13/cobra"
)

var skillsLimit int

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show the most requested skills across saved applications",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireDatabase(); err != nil {
			return err
		}

		ctx := context.Background()
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close()

		counts, err := applications.NewService(database, nil).SkillDemand(ctx, skillsLimit)
		if err != nil {
			return err
		}
		observability.NewPrinter(os.Stdout).PrintSkillDemand(counts)
		return nil
	},
}

func init() {
	skillsCmd.Flags().IntVarP(&skillsLimit, "limit", "n", 20, "Number of skills to show")
	rootCmd.AddCommand(skillsCmd)
}
