// Package cli implements the cobra commands of the metal-rookie-bot
// binary. Each subcommand lives in its own file; this file defines the
// root command, the global flags, and the exit-code handling.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// Global flags bound to the root command and inherited by every
// subcommand.
var (
	// configPath is the optional YAML config file; environment
	// variables override its values.
	configPath string

	// verbose lowers the log level to debug.
	verbose bool
)

// Version, Commit, and Date are injected from the main package, which
// receives them via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates the root command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metal-rookie-bot",
		Short: "DQX メタルーキー通知・ルート検索 Discord bot",
		Long: `metal-rookie-bot notifies a Discord channel ahead of each DQX metal
rookie window and answers walk-route queries against a map database.

The same binary is the container entry point (launch), the health probe
(healthcheck), the bot process itself (run), an offline route search
(route), and a Docker deployment helper (up).`,

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewLaunchCommand())
	rootCmd.AddCommand(NewHealthcheckCommand())
	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewUpCommand())
	rootCmd.AddCommand(NewPsCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process exit
// codes. CLIError values carry their own code; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Error())
			os.Exit(int(cliErr.Code))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitGeneralError))
	}
}
