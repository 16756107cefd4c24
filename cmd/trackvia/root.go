package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	trackvia "github.com/trackvia/trackvia-go"
	"github.com/trackvia/trackvia-go/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// client is the authorized API client built by the root pre-run phase
// and shared by all subcommands.
var client *trackvia.Client

// httpClientTimeout bounds each API request so a hung connection cannot
// block the CLI indefinitely.
const httpClientTimeout = 30 * time.Second

// newRootCmd builds and returns the fully-assembled root command with
// all subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trackvia",
		Short:   "TrackVia CLI client",
		Long:    "A command-line client for TrackVia apps, views, records, and files.",
		Version: version,
		// Silence Cobra's default error/usage printing — main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		// PersistentPreRunE resolves config, builds the API client, and
		// authorizes before every command. Tokens live only for this
		// process; each invocation performs a fresh password grant.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupClient(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newAppsCmd())
	cmd.AddCommand(newViewsCmd())
	cmd.AddCommand(newRecordsCmd())
	cmd.AddCommand(newRecordCmd())
	cmd.AddCommand(newFileCmd())

	return cmd
}

// setupClient resolves configuration, wires the logger, and performs the
// password grant that every subsequent API call relies on.
func setupClient(cmd *cobra.Command) error {
	cfg, err := config.Resolve(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level)

	client = trackvia.New(cfg.API.UserKey,
		trackvia.WithBaseURL(cfg.API.BaseURL),
		trackvia.WithHTTPClient(&http.Client{Timeout: httpClientTimeout}),
		trackvia.WithLogger(logger),
	)

	if err := client.Authorize(cmd.Context(), cfg.API.Username, cfg.API.Password); err != nil {
		return err
	}

	return nil
}

// newLogger builds the slog sink for the client library. Flags win over
// the configured level: --verbose forces debug, --quiet forces error.
func newLogger(level string) *slog.Logger {
	lvl := slog.LevelWarn

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}

	if flagVerbose {
		lvl = slog.LevelDebug
	}

	if flagQuiet {
		lvl = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
