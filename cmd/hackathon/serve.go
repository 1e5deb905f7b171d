package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vibecodeutah/hackathon-site/internal/forms"
	"github.com/vibecodeutah/hackathon-site/internal/server"
	"github.com/vibecodeutah/hackathon-site/internal/site"
	"github.com/vibecodeutah/hackathon-site/internal/site/content"
	"github.com/vibecodeutah/hackathon-site/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger := newLogger(os.Stdout, cfg.Log.Level)
			slog.SetDefault(logger)

			shutdown := telemetry.Noop
			if cfg.Telemetry.Enabled {
				shutdown, err = telemetry.InitTracer(telemetry.Options{ServiceName: cfg.Telemetry.ServiceName}, logger)
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			src, err := content.NewSource(cfg.Site.ContentPath, logger)
			if err != nil {
				return err
			}
			if cfg.Site.Watch && cfg.Site.ContentPath != "" {
				if err := src.Watch(ctx, nil); err != nil {
					return err
				}
				defer src.Close()
			}

			accent := resolveAccent(logger, cfg.Site.Accent)
			pages, err := site.New(src, site.WithAccent(accent), site.WithLogger(logger))
			if err != nil {
				return err
			}

			srv := server.New(server.Options{
				Port:            cfg.Server.Port,
				Logger:          logger,
				RequestTimeout:  cfg.Server.RequestTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				ServiceName:     cfg.Telemetry.ServiceName,
			})
			pages.Mount(srv.Router)
			forms.New(store, logger).Mount(srv.Router)

			logger.Info("site configured",
				slog.String("storage", cfg.Storage.Type),
				slog.String("accent", accent.String()),
				slog.Bool("content_watch", cfg.Site.Watch))

			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
