package usecase

import "errors"

var (
	// ErrMissingDocument is returned when the job description or the resume was not supplied.
	ErrMissingDocument = errors.New("job description and resume are both required")

	// ErrExtraction is returned when a PDF cannot be turned into text.
	ErrExtraction = errors.New("document text extraction failed")

	// ErrCompletionFailed is returned when the completion API call fails for any reason.
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrResultNotFound is returned when a session has no stored analysis.
	ErrResultNotFound = errors.New("analysis result not found")
)
