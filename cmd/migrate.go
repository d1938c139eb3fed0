package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	database "github.com/FACorreiaa/go-cityinfo-api/app/db"
	"github.com/FACorreiaa/go-cityinfo-api/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema and seed data",
	}
	cmd.AddCommand(migrateUpCmd(), migrateDownCmd())
	return cmd
}

func requirePostgres() error {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrations need the %s store, configured store is %q", config.StoreDriverPostgres, cfg.Store.Driver)
	}
	return nil
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(); err != nil {
				return err
			}
			dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
			if err != nil {
				return err
			}
			return database.RunMigrations(dbConfig.ConnectionURL, logger)
		},
	}
}

func migrateDownCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(); err != nil {
				return err
			}
			dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
			if err != nil {
				return err
			}
			return database.MigrateDown(dbConfig.ConnectionURL, steps, logger)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 rolls back everything")
	return cmd
}
