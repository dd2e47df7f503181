package model

import "fmt"

// FieldTag identifies a record field usable as a grouping key. Aggregations
// select fields through this closed enum rather than by string name.
type FieldTag string

const (
	// FieldHierarchy groups by the folder-derived hierarchy label.
	FieldHierarchy FieldTag = "hierarchy"
	// FieldProject groups by project name.
	FieldProject FieldTag = "project"
	// FieldSubproject groups by the subproject base form.
	FieldSubproject FieldTag = "subproject"
	// FieldSubprojectFull groups by subproject including any serial suffix.
	FieldSubprojectFull FieldTag = "subproject-full"
)

// ParseFieldTag validates a field name supplied by a caller (e.g. a CLI flag).
func ParseFieldTag(name string) (FieldTag, error) {
	switch FieldTag(name) {
	case FieldHierarchy, FieldProject, FieldSubproject, FieldSubprojectFull:
		return FieldTag(name), nil
	default:
		return "", fmt.Errorf("unknown field %q (want hierarchy, project, subproject, or subproject-full)", name)
	}
}

// Field returns the record's value for the given tag.
func (r *Record) Field(tag FieldTag) string {
	switch tag {
	case FieldHierarchy:
		return r.Hierarchy
	case FieldProject:
		return r.Project
	case FieldSubproject:
		return r.Subproject
	case FieldSubprojectFull:
		return r.SubprojectFull
	default:
		return ""
	}
}
