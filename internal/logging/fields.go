package logging

// Standardized attribute keys shared across components. The console handler
// treats FieldComponent specially, folding it into the line prefix.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldPhase     = "phase"
	FieldAuthor    = "author"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldReason    = "reason"
)
