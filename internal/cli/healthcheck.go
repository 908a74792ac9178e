package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/config"
	"github.com/Rate-JP/metal-rookie-bot/internal/health"
	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// NewHealthcheckCommand creates the "healthcheck" command, intended as
// the container HEALTHCHECK CMD.
func NewHealthcheckCommand() *cobra.Command {
	var (
		port     int
		timeout  time.Duration
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the bot's health endpoint",
		Long: `Issue an HTTP GET against http://127.0.0.1:$PORT/healthz. Exits 0 on
the first 2xx answer and 6 once the attempt budget is exhausted.
Connection refused, timeout, and non-2xx each consume one attempt.

Designed as the container HEALTHCHECK command; the port defaults to the
PORT environment variable, then 8080.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = config.FromEnv().Port
			}
			probe := &health.Probe{Port: port, Timeout: timeout, Attempts: attempts}
			if err := probe.Check(context.Background()); err != nil {
				return model.WrapCLIError(model.ExitUnhealthy, "unhealthy", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "healthy")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Health port (default: $PORT, then 8080)")
	cmd.Flags().DurationVar(&timeout, "timeout", health.DefaultTimeout, "Timeout per attempt")
	cmd.Flags().IntVar(&attempts, "attempts", health.DefaultAttempts, "Attempts before reporting unhealthy")
	return cmd
}
