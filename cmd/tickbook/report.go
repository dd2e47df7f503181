package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tickbook/tickbook/internal/aggregate"
	"github.com/tickbook/tickbook/internal/cli"
	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <folder>",
		Short: "Aggregate a folder of activity files into a report",
		Long: `Report runs the full pipeline: scan, parse, filter, aggregate, render.

Modes:
  tree      hierarchical breakdown over an inner/outer field pair
  flat      one summed total per distinct field value
  timeline  chronological buckets by day, week, or month
  pattern   weekday histogram, start-hour histogram, or weekday-by-hour grid`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("mode", "tree", "report shape (tree, flat, timeline, pattern)")
	cmd.Flags().String("inner", "hierarchy", "tree mode: inner grouping field")
	cmd.Flags().String("outer", "project", "tree mode: outer grouping field")
	cmd.Flags().String("field", "project", "flat mode: grouping field")
	cmd.Flags().String("bucket", "week", "timeline mode: bucket granularity (day, week, month)")
	cmd.Flags().String("stack", "", "timeline mode: optional stacked category field")
	cmd.Flags().String("pattern-mode", "weekday", "pattern mode: weekday, hour, or grid")
	cmd.Flags().String("match", "", "case-insensitive regex include-filter on the grouped value")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	batch, err := scanAndParse(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	filtered := filter.Apply(batch.Records, criteria)

	mode, _ := cmd.Flags().GetString("mode")
	match, _ := cmd.Flags().GetString("match")

	var report string
	switch mode {
	case "tree":
		inner, err := fieldFlag(cmd, "inner")
		if err != nil {
			return err
		}
		outer, err := fieldFlag(cmd, "outer")
		if err != nil {
			return err
		}
		report = cli.RenderTree(aggregate.BuildTree(filtered.Records, inner, outer, match))
	case "flat":
		field, err := fieldFlag(cmd, "field")
		if err != nil {
			return err
		}
		report = cli.RenderFlat(aggregate.BuildFlat(filtered.Records, field, match))
	case "timeline":
		bucketName, _ := cmd.Flags().GetString("bucket")
		granularity, err := aggregate.ParseGranularity(bucketName)
		if err != nil {
			return err
		}
		var stack model.FieldTag
		if stackName, _ := cmd.Flags().GetString("stack"); stackName != "" {
			if stack, err = model.ParseFieldTag(stackName); err != nil {
				return err
			}
		}
		series := aggregate.BuildSeries(filtered.Records, granularity, stack, criteria.Start, criteria.End)
		report = cli.RenderSeries(series)
	case "pattern":
		modeName, _ := cmd.Flags().GetString("pattern-mode")
		patternMode, err := aggregate.ParsePatternMode(modeName)
		if err != nil {
			return err
		}
		activity := aggregate.BuildActivity(filtered.Records, patternMode, criteria.Start, criteria.End)
		report = cli.RenderActivity(activity)
	default:
		return fmt.Errorf("unknown report mode %q (want tree, flat, timeline, or pattern)", mode)
	}

	fmt.Fprint(os.Stdout, report)
	fmt.Fprint(os.Stdout, cli.RenderStatus(filtered, batch.Errors))
	return nil
}

func fieldFlag(cmd *cobra.Command, name string) (model.FieldTag, error) {
	value, _ := cmd.Flags().GetString(name)
	return model.ParseFieldTag(value)
}
