// Package parser turns activity files into validated records. Each file is
// parsed independently; a failure becomes a model.ParseError and never
// interrupts the rest of the batch.
package parser

import (
	"path"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tickbook/tickbook/internal/model"
	"github.com/tickbook/tickbook/internal/timeutil"
)

// File is one enumerated activity file: its vault-relative path and raw text.
type File struct {
	Path    string
	Content string
}

// Filename grammars. A file matches exactly one of the two:
//
//	2024-03-04 Alpha - Beta II.md        dated
//	(Work) ProjectX - Setup III.md       hierarchy-tagged, subproject optional
var (
	datedName  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.+?)\s*-\s*(.+)$`)
	taggedName = regexp.MustCompile(`^\((.+?)\)\s*(.+)$`)

	// serialSuffix splits a trailing roman-numeral or digit serial off a
	// subproject ("Beta II" -> "Beta" + "Beta II").
	serialSuffix = regexp.MustCompile(`^(.*\S)\s+([IVXLCDM]+|\d+)$`)
)

// Parse converts one file into a record. The returned *model.ParseError is
// non-nil when the file is rejected; exactly one of the two results is set.
func Parse(file File) (*model.Record, *model.ParseError) {
	name := path.Base(file.Path)
	base := strings.TrimSuffix(name, path.Ext(name))

	fail := func(reason string) (*model.Record, *model.ParseError) {
		return nil, &model.ParseError{File: name, Path: file.Path, Reason: reason}
	}

	rec := &model.Record{
		Path:      file.Path,
		Hierarchy: hierarchyFromPath(file.Path),
	}

	var filenameDate *time.Time
	var rawSubproject string

	switch {
	case datedName.MatchString(base):
		m := datedName.FindStringSubmatch(base)
		if d, err := time.Parse("2006-01-02", m[1]); err == nil {
			day := timeutil.UTCDate(d)
			filenameDate = &day
		}
		rec.Project = strings.TrimSpace(m[2])
		rawSubproject = strings.TrimSpace(m[3])
	case taggedName.MatchString(base):
		m := taggedName.FindStringSubmatch(base)
		// The parenthesized tag wins over the folder-derived label.
		rec.Hierarchy = strings.TrimSpace(m[1])
		rest := strings.TrimSpace(m[2])
		if project, sub, found := strings.Cut(rest, " - "); found {
			rec.Project = strings.TrimSpace(project)
			rawSubproject = strings.TrimSpace(sub)
		} else {
			rec.Project = rest
		}
	default:
		return fail(model.ReasonFilenameMismatch)
	}

	meta, ok := extractFrontMatter(file.Content)
	if !ok {
		return fail(model.ReasonBadMetadata)
	}

	rec.StartTime = timeutil.ParseTimeOfDay(meta.startTime)
	rec.EndTime = timeutil.ParseTimeOfDay(meta.endTime)
	rec.Extra = meta.extra

	if meta.recurring {
		rec.Duration = timeutil.SpanHours(rec.StartTime, rec.EndTime, 1)
		if meta.startRecur != nil {
			start, ok := parseDateValue(meta.startRecur)
			if !ok {
				return fail(model.ReasonBadDate)
			}
			recurrence := &model.Recurrence{
				StartRecur: *start,
				Days:       model.ParseWeekdaySet(meta.daysOfWeek),
			}
			if meta.endRecur != nil {
				end, ok := parseDateValue(meta.endRecur)
				if !ok {
					return fail(model.ReasonBadDate)
				}
				recurrence.EndRecur = end
			}
			rec.Recurrence = recurrence
		}
	} else {
		rec.Duration = timeutil.SpanHours(rec.StartTime, rec.EndTime, meta.days)
		date := filenameDate
		if date == nil && meta.date != nil {
			date, ok = parseDateValue(meta.date)
			if !ok {
				return fail(model.ReasonBadDate)
			}
		}
		if date == nil {
			return fail(model.ReasonBadDate)
		}
		rec.Date = date
	}

	if rec.Project == "" {
		rec.Project = model.UnknownProject
	}
	rec.Subproject, rec.SubprojectFull = splitSerial(rawSubproject)

	return rec, nil
}

// hierarchyFromPath derives the grouping label from folder depth: the second
// folder down when the file is nested at least two deep, the single folder
// when there is one, and "root" for a bare file.
func hierarchyFromPath(p string) string {
	dirs := strings.Split(path.Dir(p), "/")
	if len(dirs) == 1 && (dirs[0] == "." || dirs[0] == "") {
		return model.RootHierarchy
	}
	if len(dirs) >= 2 {
		return dirs[1]
	}
	return dirs[0]
}

// splitSerial normalizes a raw subproject capture into base and full forms.
func splitSerial(raw string) (base, full string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.NoSubproject, model.NoSubproject
	}
	if m := serialSuffix.FindStringSubmatch(raw); m != nil {
		return m[1], raw
	}
	return raw, raw
}

// metadata is the typed view of a file's front matter. Recognized keys are
// lifted into fields; everything else rides along in extra.
type metadata struct {
	startTime  any
	endTime    any
	startRecur any
	endRecur   any
	date       any
	daysOfWeek []string
	days       float64
	recurring  bool
	extra      map[string]any
}

// extractFrontMatter pulls the leading --- delimited YAML block out of the
// file body. Returns false when the block is absent or not mapping-shaped.
func extractFrontMatter(content string) (metadata, bool) {
	var meta metadata

	body := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(body, "---") {
		return meta, false
	}
	rest := body[3:]
	if !strings.HasPrefix(rest, "\n") && !strings.HasPrefix(rest, "\r\n") {
		return meta, false
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, false
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &raw); err != nil || len(raw) == 0 {
		return meta, false
	}

	meta.days = 1
	meta.extra = map[string]any{}
	for key, value := range raw {
		switch key {
		case "startTime":
			meta.startTime = value
		case "endTime":
			meta.endTime = value
		case "startRecur":
			meta.startRecur = value
		case "endRecur":
			meta.endRecur = value
		case "date":
			meta.date = value
		case "daysOfWeek":
			meta.daysOfWeek = stringList(value)
		case "days":
			if n, ok := toFloat(value); ok {
				meta.days = n
			}
		case "type":
			if s, ok := value.(string); ok && strings.EqualFold(strings.TrimSpace(s), "recurring") {
				meta.recurring = true
			}
		default:
			meta.extra[key] = value
		}
	}
	if meta.startRecur != nil {
		meta.recurring = true
	}
	return meta, true
}

// parseDateValue resolves a front-matter date: a native timestamp, an
// ISO-prefixed string, or a best-effort generic parse, normalized to UTC
// midnight.
func parseDateValue(value any) (*time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		day := timeutil.UTCDate(v)
		return &day, true
	case string:
		text := strings.TrimSpace(v)
		if len(text) >= 10 {
			if d, err := time.Parse("2006-01-02", text[:10]); err == nil {
				day := timeutil.UTCDate(d)
				return &day, true
			}
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "January 2, 2006", "Jan 2, 2006", "01/02/2006"} {
			if d, err := time.Parse(layout, text); err == nil {
				day := timeutil.UTCDate(d)
				return &day, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	default:
		return nil
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
