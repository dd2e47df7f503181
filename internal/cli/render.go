package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tickbook/tickbook/internal/aggregate"
	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

const barWidth = 30

// RenderStatus formats the standing batch status: filtered totals plus the
// parse-error list.
func RenderStatus(result filter.Result, errs []model.ParseError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s across %d files\n",
		TitleStyle.Render("Total:"),
		TotalStyle.Render(fmt.Sprintf("%.2f h", result.TotalHours)),
		result.FileCount)

	if len(errs) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d files failed to parse:", len(errs))))
		b.WriteString("\n")
		for _, e := range errs {
			fmt.Fprintf(&b, "  %s %s\n", ErrorStyle.Render(e.File), SubtleStyle.Render(e.Reason))
		}
	}
	return b.String()
}

// RenderTree formats the hierarchical breakdown.
func RenderTree(tree aggregate.Tree) string {
	if msg := emptyMessage(tree.Empty, tree.BadPattern); msg != "" {
		return msg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		TitleStyle.Render(tree.Root.Name),
		TotalStyle.Render(fmt.Sprintf("%.2f h", tree.Root.Hours)))
	for _, inner := range tree.Root.Children {
		fmt.Fprintf(&b, "  %s  %.2f h\n", inner.Name, inner.Hours)
		for _, leaf := range inner.Children {
			fmt.Fprintf(&b, "    %s  %.2f h %s\n",
				leaf.Name, leaf.Hours,
				SubtleStyle.Render(fmt.Sprintf("(%d records)", len(leaf.Records))))
		}
	}
	return b.String()
}

// RenderFlat formats the categorical breakdown, largest category first.
func RenderFlat(flat aggregate.Flat) string {
	if msg := emptyMessage(flat.Empty, flat.BadPattern); msg != "" {
		return msg
	}

	categories := make([]string, 0, len(flat.Totals))
	maxHours := 0.0
	for category, hours := range flat.Totals {
		categories = append(categories, category)
		if hours > maxHours {
			maxHours = hours
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if flat.Totals[categories[i]] != flat.Totals[categories[j]] {
			return flat.Totals[categories[i]] > flat.Totals[categories[j]]
		}
		return categories[i] < categories[j]
	})

	var b strings.Builder
	for _, category := range categories {
		hours := flat.Totals[category]
		fmt.Fprintf(&b, "%-24s %s %6.2f h\n", category, bar(hours, maxHours), hours)
	}
	return b.String()
}

// RenderSeries formats the temporal buckets chronologically.
func RenderSeries(series aggregate.Series) string {
	if msg := emptyMessage(series.Empty, false); msg != "" {
		return msg
	}

	maxHours := 0.0
	for _, bucket := range series.Buckets {
		if bucket.Hours > maxHours {
			maxHours = bucket.Hours
		}
	}

	var b strings.Builder
	for _, bucket := range series.Buckets {
		fmt.Fprintf(&b, "%-16s %s %6.2f h\n", bucket.Label, bar(bucket.Hours, maxHours), bucket.Hours)
		if len(bucket.Stacks) > 0 {
			stacks := make([]string, 0, len(bucket.Stacks))
			for category := range bucket.Stacks {
				stacks = append(stacks, category)
			}
			sort.Strings(stacks)
			for _, category := range stacks {
				fmt.Fprintf(&b, "  %s\n",
					SubtleStyle.Render(fmt.Sprintf("%s: %.2f h", category, bucket.Stacks[category])))
			}
		}
	}
	return b.String()
}

// RenderActivity formats the weekday/hour pattern result.
func RenderActivity(activity aggregate.Activity) string {
	if msg := emptyMessage(activity.Empty, false); msg != "" {
		return msg
	}

	var b strings.Builder
	switch activity.Mode {
	case aggregate.ByWeekday:
		maxHours := 0.0
		for _, bin := range activity.Weekday {
			if bin.Hours > maxHours {
				maxHours = bin.Hours
			}
		}
		for day := time.Sunday; day <= time.Saturday; day++ {
			bin := activity.Weekday[day]
			fmt.Fprintf(&b, "%-10s %s %6.2f h\n", day.String(), bar(bin.Hours, maxHours), bin.Hours)
		}
	case aggregate.ByStartHour:
		maxHours := 0.0
		for _, bin := range activity.Hour {
			if bin.Hours > maxHours {
				maxHours = bin.Hours
			}
		}
		for hour, bin := range activity.Hour {
			if !bin.Populated {
				continue
			}
			fmt.Fprintf(&b, "%02d:00  %s %6.2f h\n", hour, bar(bin.Hours, maxHours), bin.Hours)
		}
	case aggregate.ByGrid:
		b.WriteString(renderGrid(activity))
	}
	return b.String()
}

// renderGrid draws the 7x24 heatmap: "." for untouched cells, a shade ramp for
// populated ones (a populated zero-hour cell still renders distinctly).
func renderGrid(activity aggregate.Activity) string {
	maxHours := 0.0
	for _, row := range activity.Grid {
		for _, bin := range row {
			if bin.Hours > maxHours {
				maxHours = bin.Hours
			}
		}
	}

	var b strings.Builder
	b.WriteString(SubtleStyle.Render("           0         6         12        18      23"))
	b.WriteString("\n")
	for day := time.Sunday; day <= time.Saturday; day++ {
		fmt.Fprintf(&b, "%-10s ", day.String())
		for hour := 0; hour < 24; hour++ {
			bin := activity.Grid[day][hour]
			switch {
			case !bin.Populated:
				b.WriteString(SubtleStyle.Render("."))
			case maxHours == 0 || bin.Hours == 0:
				b.WriteString("0")
			default:
				b.WriteString(BarStyle.Render(shade(bin.Hours / maxHours)))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shade(ratio float64) string {
	switch {
	case ratio > 0.75:
		return "█"
	case ratio > 0.5:
		return "▓"
	case ratio > 0.25:
		return "▒"
	default:
		return "░"
	}
}

func bar(hours, maxHours float64) string {
	if maxHours <= 0 {
		return ""
	}
	width := int(hours / maxHours * barWidth)
	if width < 1 && hours > 0 {
		width = 1
	}
	return BarStyle.Render(strings.Repeat("█", width))
}

// emptyMessage maps an empty-reason tag to the message shown instead of a
// report body. Returns "" when the result has data.
func emptyMessage(reason aggregate.EmptyReason, badPattern bool) string {
	if badPattern {
		return ErrorStyle.Render("Invalid filter expression.") + "\n"
	}
	switch reason {
	case aggregate.EmptyNoRecords:
		return SubtleStyle.Render("No records in the selected range.") + "\n"
	case aggregate.EmptyNoMatch:
		return SubtleStyle.Render("No records matched the filter.") + "\n"
	default:
		return ""
	}
}
