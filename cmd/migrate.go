package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or revert the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(dbpkg.Up), string(dbpkg.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configPath)
			if err != nil {
				return err
			}

			if config.DBDriver == httpserver.DriverMemory {
				return fmt.Errorf("driver %q has no schema to migrate", config.DBDriver)
			}

			logger := middleware.CreateLogger(config)

			db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
			if err != nil {
				logger.Error().Err(err).Msg("cannot connect to database")
				return err
			}
			defer db.Close()

			dir := dbpkg.Direction(args[0])
			if err := dbpkg.Migrate(db, config.MigrationURL, dir); err != nil {
				logger.Error().Err(err).Str("direction", args[0]).Msg("migration failed")
				return err
			}

			logger.Info().Str("direction", args[0]).Msg("migration done")

			return nil
		},
	}
}
