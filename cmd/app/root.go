package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/internal/config"
	"github.com/clubhouse-hq/clubhouse-api/internal/db"
	"github.com/clubhouse-hq/clubhouse-api/internal/logger"
)

const defaultConfigPath = "./cmd/app/config.yml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the clubhouse command. Running it without a
// subcommand serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	serve := NewServeCommand(opts)

	cmd := &cobra.Command{
		Use:           "clubhouse",
		Short:         "Clubhouse API",
		Long:          "Club announcements, registration forms, QR tickets, achievements and courses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewPromoteCommand(opts))

	return cmd
}

// bootstrap loads the config, installs the global logger and opens the
// database.
func bootstrap(opts *RootOptions) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	database, err := db.Open(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, database, nil
}
