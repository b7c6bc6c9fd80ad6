package main

import (
	"github.com/spf13/cobra"

	"guild-logger/internal/audit"
	"guild-logger/internal/config"
	"guild-logger/internal/settings"
	"guild-logger/pkg/logger"
	"guild-logger/pkg/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the settings and audit tables if they do not exist",
	Long: `Create the bot_settings and settings_audit tables.

Reads only APP_ENV and the DB_* variables. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.LoadDB()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.Env)

	db, err := utils.OpenPostgres(ctx, cfg.PostgresDSN(), utils.PostgresPoolConfig{MinConns: 1, MaxConns: 2})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := settings.NewPostgresRepo(db.DB, cfg.DB.CommandTimeout).EnsureSchema(ctx); err != nil {
		return err
	}
	if err := audit.NewPostgresRepo(db.DB, cfg.DB.CommandTimeout).EnsureSchema(ctx); err != nil {
		return err
	}
	log.Info("schema ready")
	return nil
}
