package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rate-JP/metal-rookie-bot/internal/bot"
	"github.com/Rate-JP/metal-rookie-bot/internal/config"
	"github.com/Rate-JP/metal-rookie-bot/internal/health"
	"github.com/Rate-JP/metal-rookie-bot/internal/logging"
	"github.com/Rate-JP/metal-rookie-bot/internal/routes"
	"github.com/Rate-JP/metal-rookie-bot/internal/store"
)

// NewRunCommand creates the "run" command: the bot process itself.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot process (gateway, scheduler, health endpoint)",
		Long: `Run the bot in the foreground: the Discord gateway session, the metal
rookie notification scheduler, the map-data watcher, and the HTTP health
endpoint the container HEALTHCHECK probes.

The process exits on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun()
		},
	}
}

func runRun() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForRun(); err != nil {
		return err
	}

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	settings, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer settings.Close()

	maps := routes.NewSource(cfg.MapPath, log.Named("routes"))
	healthSrv := health.NewServer(cfg.Port, log.Named("health"))

	b, err := bot.New(cfg, settings, maps, log.Named("bot"), healthSrv.SetReady)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return healthSrv.Run(ctx) })
	g.Go(func() error { return b.Run(ctx) })
	g.Go(func() error { return b.Scheduler().Run(ctx) })
	g.Go(func() error {
		// Map watching is best-effort: a missing data directory must not
		// take the notification side down.
		if err := maps.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("マップ監視を停止しました", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("シャットダウンしました")
	return nil
}
