package engine

import "fmt"

// AnalysisError wraps any transport or protocol failure from the analysis
// engine. Callers get a single failure type carrying the original cause
// instead of raw HTTP errors.
type AnalysisError struct {
	Op   string // submit, fetch, feedback, templates
	Err  error
	Code int // HTTP status when the engine responded, 0 otherwise
}

func (e *AnalysisError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("analysis %s failed (status %d): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("analysis %s failed: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates an AnalysisError for a failed engine operation.
func NewAnalysisError(op string, code int, err error) *AnalysisError {
	return &AnalysisError{Op: op, Err: err, Code: code}
}
