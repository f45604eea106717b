package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"paysynth/config"
	"paysynth/database"
	"paysynth/repository"
)

// Load reads the three generated CSVs and inserts them into a relational
// store, creating the schema first. Loads are idempotent: existing rows are
// cleared so repeated runs stay reproducible.
func Load(ctx context.Context, cfg *config.Config) error {
	users, err := repository.ReadUsers(filepath.Join(cfg.CSVDir, repository.UsersFile))
	if err != nil {
		return err
	}
	txns, err := repository.ReadTransactions(filepath.Join(cfg.CSVDir, repository.TransactionsFile))
	if err != nil {
		return err
	}
	events, err := repository.ReadAppEvents(filepath.Join(cfg.CSVDir, repository.AppEventsFile))
	if err != nil {
		return err
	}

	if cfg.DatabaseDriver == "sqlite3" {
		if dir := filepath.Dir(cfg.DatabaseURL); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := database.NewConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	store := repository.NewStore(db)
	if err := store.Reset(ctx); err != nil {
		return err
	}
	if err := store.InsertUsers(ctx, users); err != nil {
		return err
	}
	if err := store.InsertTransactions(ctx, txns); err != nil {
		return err
	}
	if err := store.InsertAppEvents(ctx, events); err != nil {
		return err
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	for _, table := range []string{"users", "transactions", "app_events"} {
		log.WithFields(log.Fields{
			"table": table,
			"rows":  counts[table],
		}).Info("Loaded")
	}
	return nil
}
