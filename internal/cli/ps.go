package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/docker"
)

// NewPsCommand creates the "ps" command: list the bot containers the
// `up` command started.
func NewPsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List managed bot containers",
		Long: `List every container carrying the metal-rookie-bot managed-by label,
running or not. Discovery is label-based; no state file is kept on the
host.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPs(cmd)
		},
	}
}

func runPs(cmd *cobra.Command) error {
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	ctx := cmd.Context()
	if err := cli.Ping(ctx); err != nil {
		return err
	}

	containers, err := docker.ListManaged(ctx, cli)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatManaged(containers))
	return nil
}

// formatManaged renders the container table: one header row, one row per
// container, IDs shortened to the usual 12 characters.
func formatManaged(containers []docker.ManagedContainer) string {
	if len(containers) == 0 {
		return "No bot containers found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-14s %-10s %s\n", "NAME", "ID", "STATE", "HEALTH PORT")
	for _, c := range containers {
		id := c.ID
		if len(id) > 12 {
			id = id[:12]
		}
		port := c.HealthPort
		if port == "" {
			port = "-"
		}
		fmt.Fprintf(&b, "%-24s %-14s %-10s %s\n", c.Name, id, c.State, port)
	}
	return b.String()
}
