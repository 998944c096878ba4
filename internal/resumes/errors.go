package resumes

import "errors"

var (
	// ErrNotFound is returned when a resume does not exist.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput flags rejected upload parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType flags uploads with an extension outside pdf/docx/txt.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge flags uploads above the size ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNoEmail is returned when no email address can be found in the resume.
	ErrNoEmail = errors.New("no email address found in resume")
	// ErrIncompleteResume flags extractions missing critical sections.
	ErrIncompleteResume = errors.New("extraction missing critical resume sections")
	// ErrProcessingFailed wraps terminal LLM pipeline failures.
	ErrProcessingFailed = errors.New("resume processing failed")
)
