package model

// Parse failure reasons. These are user-facing strings surfaced in the batch
// error list, kept stable so downstream displays can group on them.
const (
	ReasonFilenameMismatch = "Filename pattern mismatch."
	ReasonBadMetadata      = "Missing or invalid metadata block."
	ReasonBadDate          = "Invalid date parsed."
)

// ParseError records one file that failed to parse. Parse failures are data,
// not errors: they accumulate per batch and never abort the other files.
type ParseError struct {
	File   string
	Path   string
	Reason string
}

func (e ParseError) String() string {
	return e.File + ": " + e.Reason
}
