package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/tupyy/tpserve/internal/config"
	"github.com/tupyy/tpserve/internal/handlers"
	"github.com/tupyy/tpserve/internal/responder"
	"github.com/tupyy/tpserve/internal/server"
	"github.com/tupyy/tpserve/internal/services"
	"github.com/tupyy/tpserve/pkg/threadpool"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	var configFile, envFile string

	cmd := &cobra.Command{
		Use:          "tpserve",
		Short:        "Serve static files from a work-stealing thread pool",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(viper.New(), cmd.Flags(), configFile, envFile)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			defer func() { _ = logger.Sync() }()

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file loaded before reading TPSERVE_* variables")
	cobra.CheckErr(registerFlags(cmd.Flags()))

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.New(color.Bold).Sprint("tpserve"), color.GreenString(version))
		},
	}
}

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.LogFormat == config.LogFormatJSON {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// run serves until ctx is cancelled or a signal arrives. Shutdown closes the
// listener first, then drains the pool, then stops the admin server.
func run(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("tpserve")
	log.Infow("starting", "version", version, "config", cfg.DebugMap())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := threadpool.New(cfg.Pool.Workers,
		threadpool.WithIdleBackoff(cfg.Pool.IdleBackoff),
		threadpool.WithLogger(zap.S().Named("threadpool")),
	)

	srv, err := server.NewServer(cfg, pool, responder.New(cfg.Server))
	if err != nil {
		pool.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	acceptDone := make(chan struct{})
	g.Go(func() error {
		defer close(acceptDone)
		return srv.Start(gctx)
	})

	var admin *server.AdminServer
	if cfg.Admin.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			pool,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		h := handlers.New(services.NewStatusService(pool, srv))
		admin = server.NewAdminServer(cfg, registry, func(router *gin.RouterGroup) {
			handlers.RegisterHandlers(router, h)
		})
		g.Go(func() error {
			return admin.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			log.Errorw("failed to stop listener", "error", err)
		}
		<-acceptDone

		pool.Close()
		log.Infow("pool drained", "stats", pool.Stats())

		if admin != nil {
			if err := admin.Stop(shutdownCtx); err != nil {
				log.Errorw("failed to stop admin server", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("stopped")
	return nil
}
