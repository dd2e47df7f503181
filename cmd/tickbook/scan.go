package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tickbook/tickbook/internal/cli"
	"github.com/tickbook/tickbook/internal/filter"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Parse a folder of activity files and report totals and parse errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := scanAndParse(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			slog.Debug("Scan complete",
				"records", len(batch.Records),
				"errors", len(batch.Errors))

			filtered := filter.Apply(batch.Records, criteria)
			fmt.Fprint(os.Stdout, cli.RenderStatus(filtered, batch.Errors))
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
