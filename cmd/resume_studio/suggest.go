package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-studio/internal/assistant"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/spf13/cobra"
)

var (
	suggestInput   string
	suggestJobFile string
	suggestMessage string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the assistant for edits to a resume file",
	Long: `Send one chat message about a resume to the configured suggestion backend and print the
suggested edits. A job description file, when given, is sent along as context.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestInput, "in", "i", "", "Path to a portable resume file (required)")
	suggestCmd.Flags().StringVarP(&suggestJobFile, "job", "j", "", "Path to a job description text file")
	suggestCmd.Flags().StringVarP(&suggestMessage, "message", "m", "Suggest improvements for this resume.", "Chat message to send")

	if err := suggestCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := readDocument(suggestInput)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, _, closeLLM, err := newSuggestService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLLM()

	st := store.New()
	st.ImportResumeData(*doc)
	if suggestJobFile != "" {
		jd, err := os.ReadFile(suggestJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		st.SetJobDescription(strings.TrimSpace(string(jd)))
	}

	ex, err := assistant.New(svc, assistant.WithTimeout(cfg.Suggest.Timeout)).SendMessage(ctx, st, suggestMessage)
	if err != nil {
		return err
	}
	if ex.Failed {
		return errors.New(ex.Reply.Content)
	}

	fmt.Println(ex.Reply.Content)
	observability.NewPrinter(os.Stdout).PrintSuggestions(ex.Reply.Suggestions)
	return nil
}
