package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSource is the standardized structured logging key for candidate source names.
	FieldSource = "source"
	// FieldRunID is the standardized structured logging key for per-run identifiers.
	FieldRunID = "run_id"
	// FieldKey is the standardized structured logging key for dedup keys.
	FieldKey = "key"
	// FieldCategory is the standardized structured logging key for event categories.
	FieldCategory = "category"
)
