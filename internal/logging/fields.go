package logging

// Shared attribute keys. Using the same names everywhere keeps log searches
// and the console component prefix working.
const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldLanguage  = "lang"
	FieldInput     = "input"
	FieldOutput    = "output"
)
