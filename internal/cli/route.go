package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rate-JP/metal-rookie-bot/internal/config"
	"github.com/Rate-JP/metal-rookie-bot/internal/routes"
)

// NewRouteCommand creates the "route" command: the offline equivalent of
// the !route chat command, useful for editing the map file.
func NewRouteCommand() *cobra.Command {
	var (
		dest   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Search a walk route and rura recommendation offline",
		Long: `Compute the hub→destination walk route and the recommended rura point
against the map data file, without a Discord session.

Examples:
  metal-rookie-bot route --dest ウルベア地下遺跡
  metal-rookie-bot route --dest グレン --db ./dqx_map_data.jsonc`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = config.FromEnv().MapPath
			}

			m, err := routes.LoadMap(dbPath)
			if err != nil {
				return err
			}

			plan, err := m.PlanRoute(dest)
			if err != nil {
				var nf *routes.NotFoundError
				if errors.As(err, &nf) {
					fmt.Fprintln(cmd.OutOrStdout(), routes.NotFoundText(nf))
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), plan.Text())
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Destination area name")
	cmd.Flags().StringVar(&dbPath, "db", "", "Map data file (default: $DQX_DB_PATH, then dqx_map_data.jsonc)")
	cmd.MarkFlagRequired("dest")
	return cmd
}
