package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clubhouse-hq/clubhouse-api/internal/api"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, database, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer zap.L().Sync() //nolint:errcheck

			if err = dao.InitTables(database); err != nil {
				return fmt.Errorf("failed to migrate tables -> %w", err)
			}

			s, err := api.NewServer(conf, database)
			if err != nil {
				return fmt.Errorf("failed to initialize server -> %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err = s.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to start the server -> %w", err)
			}
			zap.L().Info("server stopped")

			return nil
		},
	}
}
