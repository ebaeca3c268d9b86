package main

import (
	"context"
	"fmt"

	"monkey-social/internal/adapters/storage"
	"monkey-social/internal/config"
	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/notifications"
	"monkey-social/internal/domain/world"
	"monkey-social/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "worker",
		Short:         "monkey-social world worker: periodic mood/social updates for every monkey",
		Long:          "worker runs the world update (mood decay, daily and status events, hibernation, notification pruning, auto-social pairing) against the configured store, either on a cron schedule or once.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newTickCmd(flags),
	)
	return rootCmd
}

// app es lo que comparten run y tick.
type app struct {
	cfg    config.Config
	log    logger.Logger
	handle *storage.Handle
	job    *world.Job
}

func (a *app) Close() error {
	if a == nil || a.handle == nil {
		return nil
	}
	return a.handle.Close()
}

func wireApp(ctx context.Context, flags *rootFlags, dice world.Dice, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateWorker(); err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	}).With(map[string]any{"component": "world"})

	h, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	job := world.NewJob(world.Options{
		Monkeys:       monkeys.NewStoreRepo(h.Store, log),
		Notifications: notifications.NewService(notifications.NewStoreRepo(h.Store)),
		Writer:        h.Store,
		Dice:          dice,
		Log:           log,
		Metrics:       world.NewMetrics(reg),
	})

	return &app{cfg: cfg, log: log, handle: h, job: job}, nil
}
