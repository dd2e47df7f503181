package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickbook/tickbook/internal/cli"
	"github.com/tickbook/tickbook/internal/model"
	"github.com/tickbook/tickbook/internal/parser"
	"github.com/tickbook/tickbook/internal/scanner"
	"github.com/tickbook/tickbook/internal/timeutil"
)

// addFilterFlags registers the filter-criteria flags shared by report and
// export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("hierarchy", "", "only include records with this hierarchy label")
	cmd.Flags().String("project", "", "only include records with this project")
	cmd.Flags().String("from", "", "start of the date window (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "end of the date window (YYYY-MM-DD, inclusive)")
}

// criteriaFromFlags builds FilterCriteria from the shared flags.
func criteriaFromFlags(cmd *cobra.Command) (model.FilterCriteria, error) {
	criteria := model.FilterCriteria{}
	criteria.Hierarchy, _ = cmd.Flags().GetString("hierarchy")
	criteria.Project, _ = cmd.Flags().GetString("project")

	var err error
	if criteria.Start, err = dateFlag(cmd, "from"); err != nil {
		return criteria, err
	}
	if criteria.End, err = dateFlag(cmd, "to"); err != nil {
		return criteria, err
	}
	if criteria.Start != nil && criteria.End != nil && criteria.Start.After(*criteria.End) {
		return criteria, fmt.Errorf("--from %s is after --to %s",
			criteria.Start.Format("2006-01-02"), criteria.End.Format("2006-01-02"))
	}
	return criteria, nil
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD): %w", name, value, err)
	}
	day := timeutil.UTCDate(d)
	return &day, nil
}

// scanAndParse enumerates a folder and parses all of its files, driving a
// progress bar on stderr.
func scanAndParse(ctx context.Context, folder string) (parser.BatchResult, error) {
	files, err := scanner.Scan(ctx, folder)
	if err != nil {
		return parser.BatchResult{}, err
	}

	bar := cli.NewScanProgress(len(files), os.Stderr)
	result := parser.ParseBatchProgress(ctx, files, func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	return result, ctx.Err()
}
