// Command hackathon serves the Vibe Code Utah site and previews its landing
// page animations in a terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibecodeutah/hackathon-site/internal/config"
	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hackathon",
		Short: "Vibe Code Utah hackathon site",
		Long: `Serves the hackathon site: landing page, teams, docs and the
registration and donation forms.

Configuration is read from config.yaml, HACKATHON_* environment variables
and an optional .env file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default config.yaml when present)")

	root.AddCommand(newServeCmd(), newPreviewCmd(), newRegistrationsCmd(), newInquiriesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the JSON logger used by every command.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn", "warning":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv}))
}

// resolveAccent parses name, warning when it falls back to the default.
func resolveAccent(logger *slog.Logger, name string) theme.Accent {
	accent, ok := theme.Parse(name)
	if !ok {
		logger.Warn("unknown accent, using default",
			slog.String("accent", name),
			slog.String("default", accent.String()))
	}
	return accent
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
