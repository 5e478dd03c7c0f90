package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldFileType   = "file_type"
	FieldBank       = "bank"
	FieldBatchID    = "batch_id"
	FieldMonth      = "month"
	FieldRow        = "row"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldDuplicates = "duplicates"
	FieldDirectory  = "directory"
	FieldFormat     = "format"
	FieldOutputFile = "output_file"
)
