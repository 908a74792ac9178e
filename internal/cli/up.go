package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/docker"
	"github.com/Rate-JP/metal-rookie-bot/internal/model"
	"github.com/Rate-JP/metal-rookie-bot/internal/port"
)

// passthroughEnv lists the variables forwarded from the caller's
// environment into the deployed container.
var passthroughEnv = []string{
	"DISCORD_TOKEN",
	"CHANNEL_ID",
	"DQX_ROUTE_CHANNEL_ID",
	"PREFIX",
	"MESSAGE_MAIN",
	"DB_PATH",
	"DQX_DB_PATH",
	"BOT_SCRIPT",
}

// NewUpCommand creates the "up" command: deploy the bot as a Docker
// container with the health-check contract attached.
func NewUpCommand() *cobra.Command {
	var (
		image      string
		name       string
		healthPort int
		dataDir    string
		extraEnv   []string
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create and start the bot container",
		Long: `Create and start the bot container through the Docker Engine API.

The container gets the health check wired in (probe every 30s, 5s
timeout, unhealthy after 3 failures), an unless-stopped restart policy,
and a managed-by label for discovery. Known bot environment variables
(DISCORD_TOKEN, CHANNEL_ID, ...) are forwarded from the caller's
environment; --env adds or overrides individual variables.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd, image, name, healthPort, dataDir, extraEnv)
		},
	}

	cmd.Flags().StringVar(&image, "image", "metal-rookie-bot:latest", "Bot image reference")
	cmd.Flags().StringVar(&name, "name", "metal-rookie-bot", "Container name")
	cmd.Flags().IntVar(&healthPort, "port", 8080, "Published health port")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Host directory bind-mounted over /app/data")
	cmd.Flags().StringArrayVar(&extraEnv, "env", nil, "Additional KEY=VALUE environment entries")
	return cmd
}

func runUp(cmd *cobra.Command, image, name string, healthPort int, dataDir string, extraEnv []string) error {
	// The health port is published on the host; refuse to deploy into a
	// known conflict instead of letting the container fail to start.
	if !port.NewScanner().IsAvailable(healthPort) {
		return model.NewCLIError(model.ExitPortConflict,
			fmt.Sprintf("port %d is already in use on the host", healthPort))
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	ctx := cmd.Context()
	if err := cli.Ping(ctx); err != nil {
		return err
	}

	env := collectEnv(extraEnv)
	id, err := docker.Deploy(ctx, cli, docker.DeployOptions{
		Image:      image,
		Name:       name,
		Env:        env,
		HealthPort: healthPort,
		DataDir:    dataDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "started %s (%.12s)\n", name, id)
	return nil
}

// collectEnv merges the passthrough variables present in the caller's
// environment with explicit --env entries; explicit entries win by
// coming last.
func collectEnv(extra []string) []string {
	var env []string
	for _, key := range passthroughEnv {
		if v := os.Getenv(key); v != "" {
			env = append(env, key+"="+v)
		}
	}
	return append(env, extra...)
}
