package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/poolbot/internal/config"
	"github.com/KirkDiggler/poolbot/internal/repositories/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)

	ctx := cmd.Context()
	db, dialect, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrate %s store: %w", dialect, err)
	}

	logger.Info("migrations applied", "dialect", string(dialect))
	return nil
}
