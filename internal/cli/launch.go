package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/config"
	"github.com/Rate-JP/metal-rookie-bot/internal/launcher"
	"github.com/Rate-JP/metal-rookie-bot/internal/logging"
)

// NewLaunchCommand creates the "launch" command: the container entry
// point.
func NewLaunchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Start the configured entry point as the foreground process",
		Long: `Resolve the entry point from the BOT_SCRIPT environment variable and
start it as the container's foreground process. When BOT_SCRIPT is unset
the built-in bot (this binary's "run" command) is started.

The child's exit code is propagated, so the container's lifecycle matches
the process's lifecycle. SIGINT/SIGTERM are forwarded to the child.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch()
		},
	}
}

func runLaunch() error {
	cfg := config.FromEnv()

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	argv, err := launcher.Resolve(cfg.EntryPoint)
	if err != nil {
		return err
	}

	code, err := launcher.Run(context.Background(), argv, log)
	if err != nil {
		return err
	}
	if code != 0 {
		// Pass-through: the child's exit status is the container's.
		log.Sync()
		os.Exit(code)
	}
	return nil
}
