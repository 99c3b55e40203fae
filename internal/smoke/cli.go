package smoke

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/pie/pkg/logger"
)

// SetupLogging initializes the shared logger on stderr so the report owns stdout.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithFormat(os.Stderr, format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `PIE Smoke Tool
==============

Drives a running Pricing Intelligence Engine over HTTP, checks the
properties its views guarantee and prints a report.

Usage:
  go run ./cmd/pie-smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -timeout duration
        HTTP request timeout (default 10s)
  -workers int
        Number of checks run concurrently (default 4)
  -log-format string
        Log format, text or json (default "text")
  -verbose
        Log every check as it finishes
  -help
        Show this help message

Exit status is 1 when any check fails.
`)
}
