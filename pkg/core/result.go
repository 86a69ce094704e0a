package core

// ErrorKind classifies a validation finding.
type ErrorKind string

const (
	KindSchema     ErrorKind = "schema"
	KindStructure  ErrorKind = "structure"
	KindReference  ErrorKind = "reference"
	KindIDConflict ErrorKind = "id-conflict"
	KindFormat     ErrorKind = "format"
)

// Severity distinguishes hard failures from advisory findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location points at where in a document a finding was raised.
// Zero fields mean "unknown".
type Location struct {
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Section string `json:"section,omitempty"`
}

// ValidationError is a single finding against one document. Findings are
// values, not Go errors: they are collected, never thrown.
type ValidationError struct {
	Kind       ErrorKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Location   *Location `json:"location,omitempty"`
	Rule       string    `json:"rule,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of validating one file. Valid is true iff
// Errors is empty; warnings never affect validity.
type ValidationResult struct {
	Path         string            `json:"path"`
	DocumentType string            `json:"documentType,omitempty"`
	DocumentID   string            `json:"documentId,omitempty"`
	Valid        bool              `json:"valid"`
	Errors       []ValidationError `json:"errors"`
	Warnings     []ValidationError `json:"warnings"`
}

// AddError appends an error finding and flips Valid.
func (r *ValidationResult) AddError(e ValidationError) {
	e.Severity = SeverityError
	r.Errors = append(r.Errors, e)
	r.Valid = false
}

// AddWarning appends a warning finding.
func (r *ValidationResult) AddWarning(e ValidationError) {
	e.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, e)
}
