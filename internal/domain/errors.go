package domain

import "fmt"

// DocvetError is the base error type with context.
type DocvetError struct {
	Phase      string // "config", "scan", "parse", "check", "sandbox", "external", "report"
	File       string
	LineNumber int
	Message    string
	Suggestion string
	Cause      error
}

func (e *DocvetError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.LineNumber > 0 {
		s += fmt.Sprintf(":%d", e.LineNumber)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (%s)", e.Suggestion)
	}
	return s
}

func (e *DocvetError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DocvetError.
func NewError(phase, file string, line int, message string, cause error) *DocvetError {
	return &DocvetError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}

// NewErrorWithSuggestion creates a DocvetError carrying a hint for the user.
func NewErrorWithSuggestion(phase, file string, line int, message, suggestion string, cause error) *DocvetError {
	return &DocvetError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}
