package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeasurer(t *testing.T) {
	cfg := &config.Config{}
	cfg.Overflow.Measurer = config.MeasurerBrowser

	m, err := newMeasurer(cfg, "")
	require.NoError(t, err)
	assert.IsType(t, &browser.Measurer{}, m)

	m, err = newMeasurer(cfg, config.MeasurerEstimate)
	require.NoError(t, err)
	assert.IsType(t, validation.EstimateMeasurer{}, m)

	_, err = newMeasurer(cfg, "ruler")
	assert.ErrorContains(t, err, `unknown measurer "ruler"`)
}

func longDocument() types.ResumeDocument {
	doc := types.NewDocument()
	doc.Summary = strings.Repeat("Built and operated distributed systems at scale. ", 80)
	for i := 0; i < 12; i++ {
		doc.Experience = append(doc.Experience, types.Experience{
			ID:           "e" + string(rune('a'+i)),
			Company:      "Company",
			JobTitle:     "Engineer",
			BulletPoints: []string{strings.Repeat("Shipped features across the stack. ", 10)},
		})
	}
	return doc
}

func TestValidateCommand_FitsPage(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeResumeFile(t, types.NewDocument())

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--measurer", "estimate", "--strict")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed: %s", output)
}

func TestValidateCommand_StrictOverflow(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeResumeFile(t, longDocument())

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--measurer", "estimate", "--strict")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "overflows")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode())
	}
}

func TestValidateCommand_BadPageFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeResumeFile(t, types.NewDocument())

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--page-format", "legal")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown page format")
}

func TestTemplatesCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "templates")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err)
	for _, tmpl := range types.Templates() {
		assert.Contains(t, string(output), string(tmpl.ID))
	}
}
