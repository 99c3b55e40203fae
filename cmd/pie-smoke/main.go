package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/pie/internal/smoke"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultWorkers    = 4
	defaultRunTimeout = 2 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		workers   = flag.Int("workers", defaultWorkers, "Number of checks run concurrently")
		logFormat = flag.String("log-format", "text", "Log format (text or json)")
		verbose   = flag.Bool("verbose", false, "Log every check as it finishes")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp(os.Stdout)
		return 0
	}

	if err := smoke.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Workers: *workers,
		Verbose: *verbose,
	}

	if _, err := smoke.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
