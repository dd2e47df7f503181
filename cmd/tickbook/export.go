package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
	"github.com/tickbook/tickbook/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <folder>",
		Short: "Snapshot a folder scan into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				dbPath = viper.GetString("export.db")
			}
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
				dbPath = home + "/.local/share/tickbook/snapshots.db"
			}

			batch, err := scanAndParse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			totals := filter.Apply(batch.Records, model.FilterCriteria{})

			store, err := storage.New(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("Failed to close snapshot store", "error", closeErr)
				}
			}()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			id, err := store.SaveSnapshot(cmd.Context(), args[0], batch.Records, batch.Errors, totals.TotalHours)
			if err != nil {
				return err
			}

			slog.Info("Snapshot saved",
				"id", id,
				"db", dbPath,
				"records", len(batch.Records),
				"parse_errors", len(batch.Errors),
				"total_hours", totals.TotalHours)
			return nil
		},
	}
	cmd.Flags().String("db", "", "snapshot database path (default: ~/.local/share/tickbook/snapshots.db)")
	return cmd
}
