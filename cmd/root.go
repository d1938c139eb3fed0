package cmd

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-cityinfo-api/app/logger"
	"github.com/FACorreiaa/go-cityinfo-api/config"
)

const (
	serviceName = "cityinfo-api"
	version     = "1.0.0"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "cityinfo",
		Short:         "HTTP API for cities and their points of interest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Use standard log until slog is configured.
			if err := godotenv.Load(); err != nil {
				log.Println("Warning: .env file not found or error loading:", err)
			}

			var err error
			cfg, err = config.InitConfig()
			if err != nil {
				return err
			}

			logger = appLogger.Init(cfg.IsDevelopment())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		if logger != nil {
			logger.Error("Command failed", slog.Any("error", err))
		}
		return err
	}
	return nil
}
