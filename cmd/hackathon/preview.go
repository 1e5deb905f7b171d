package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vibecodeutah/hackathon-site/internal/display/term"
	"github.com/vibecodeutah/hackathon-site/internal/dom"
	"github.com/vibecodeutah/hackathon-site/internal/motion"
	"github.com/vibecodeutah/hackathon-site/internal/site"
	"github.com/vibecodeutah/hackathon-site/internal/site/content"
)

func newPreviewCmd() *cobra.Command {
	var (
		accent  string
		seed    uint64
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play the landing page animations in the terminal",
		Long: `Renders the landing page, lays it out as rows and runs its counters,
progress bars, reveals and flow demos live. Scroll with the arrow keys,
PgUp/PgDn or the mouse wheel; hover cards with the mouse; q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// The screen owns stdout, so logs go elsewhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}
			logger := newLogger(logOut, cfg.Log.Level)

			name := cfg.Site.Accent
			if cmd.Flags().Changed("accent") {
				name = accent
			}
			palette := resolveAccent(logger, name)

			src, err := content.NewSource(cfg.Site.ContentPath, logger)
			if err != nil {
				return err
			}
			pages, err := site.New(src, site.WithAccent(palette), site.WithLogger(logger))
			if err != nil {
				return err
			}

			var html bytes.Buffer
			if err := pages.RenderHome(&html); err != nil {
				return err
			}
			doc, err := dom.Parse(&html)
			if err != nil {
				return fmt.Errorf("parse landing page: %w", err)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			screen.EnableMouse()
			screen.HideCursor()

			var opts []motion.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, motion.WithRand(rand.New(rand.NewPCG(seed, seed))))
			}
			host := term.New(screen, doc,
				term.WithAccent(palette),
				term.WithLogger(logger),
				term.WithDirectorOptions(opts...),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return host.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&accent, "accent", "", "accent colour: purple, cyan, orange, pink or green")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the flow demo outcomes")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	return cmd
}
