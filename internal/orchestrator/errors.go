package orchestrator

import (
	"errors"

	"prefixtrim/internal/language"
)

// TrimErrorType represents the kind of failure surfaced to the user.
type TrimErrorType string

const (
	// InvalidInput indicates a missing directory or prefix.
	InvalidInput TrimErrorType = "INVALID_INPUT"
	// NoMatchingFiles indicates the directory holds no files of the language.
	NoMatchingFiles TrimErrorType = "NO_MATCHING_FILES"
	// DirectoryNotFound indicates the chosen directory no longer exists.
	DirectoryNotFound TrimErrorType = "DIRECTORY_NOT_FOUND"
	// IOFailure indicates a read, write or delete failed during a run.
	IOFailure TrimErrorType = "IO_FAILURE"
)

// Sentinel errors for use with errors.Is.
var (
	ErrNoLanguageSelected = language.ErrNoLanguageSelected
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoMatchingFiles    = errors.New("no matching files")
	ErrDirectoryNotFound  = errors.New("directory not found")
	ErrIOFailure          = errors.New("i/o failure")
)

// TrimError represents a failure of ListCandidates, InferPrefix, TrimAll or
// DeleteSuperseded. Its message carries the underlying failure text.
type TrimError struct {
	Type    TrimErrorType
	Path    string
	Message string
	Err     error
}

func (e *TrimError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TrimError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error's type.
func (e *TrimError) Is(target error) bool {
	switch e.Type {
	case InvalidInput:
		return target == ErrInvalidInput
	case NoMatchingFiles:
		return target == ErrNoMatchingFiles
	case DirectoryNotFound:
		return target == ErrDirectoryNotFound
	case IOFailure:
		return target == ErrIOFailure
	}
	return false
}

func invalidInput(message string) *TrimError {
	return &TrimError{Type: InvalidInput, Message: message}
}

func ioFailure(path string, err error) *TrimError {
	return &TrimError{Type: IOFailure, Message: "execution failed", Path: path, Err: err}
}
