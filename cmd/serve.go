package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configPath)
			if err != nil {
				return err
			}

			logger := middleware.CreateLogger(config)

			backend, err := httpserver.OpenBackend(config)
			if err != nil {
				logger.Error().Err(err).Send()
				return err
			}

			if config.Environment != "development" {
				gin.SetMode(gin.ReleaseMode)
			}

			server, err := httpserver.New(backend, logger, config)
			if err != nil {
				logger.Error().Err(err).Msg("cannot create server")
				return err
			}

			logger.Info().Str("address", config.ServerAddress).Str("driver", config.DBDriver).Msg("LEDGER API SERVER HAS STARTED")

			return server.Engine.Run(config.ServerAddress)
		},
	}
}
