package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Create or upgrade the SQLite schema for briefs, ads, feedback and brand voices.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	slog.Info("connecting to database", "path", cfg.DatabasePath)
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations completed successfully",
		"briefs", st.Briefs,
		"ads", st.Ads,
		"feedback", st.Feedback,
	)
	return nil
}
