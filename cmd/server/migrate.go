package main

import (
	"context"

	"mortex-shop/internal/config"
	"mortex-shop/internal/database"
	"mortex-shop/internal/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create schema/indexes, seed the catalog and the admin user, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel)

			stores, err := database.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = stores.Close(context.Background()) }()

			admin := database.AdminAccount{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
			if err := database.Seed(cmd.Context(), stores, admin, log); err != nil {
				return err
			}
			log.Info().Msg("migration complete")
			return nil
		},
	}
}
