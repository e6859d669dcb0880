package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, database, err := bootstrap(opts)
			if err != nil {
				return err
			}

			if reset {
				if err = dao.DropTables(database); err != nil {
					return fmt.Errorf("failed to drop tables -> %w", err)
				}
				zap.L().Warn("dropped all tables")
			}

			if err = dao.InitTables(database); err != nil {
				return fmt.Errorf("failed to migrate tables -> %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table before migrating")

	return cmd
}
