// Package organizer writes trimmed copies next to their originals and removes
// superseded originals.
package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteErrorType represents the type of write error.
type WriteErrorType string

const (
	// SourceNotFound indicates the original file does not exist.
	SourceNotFound WriteErrorType = "SOURCE_NOT_FOUND"
	// TargetIsDirectory indicates a directory occupies the target name.
	TargetIsDirectory WriteErrorType = "TARGET_IS_DIRECTORY"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied WriteErrorType = "PERMISSION_DENIED"
	// WriteFailed covers any other filesystem failure.
	WriteFailed WriteErrorType = "WRITE_FAILED"
)

// WriteError represents an error that occurred while writing or removing a file.
type WriteError struct {
	Type WriteErrorType
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// tempPattern names staged files; the scanner ignores it.
const tempPattern = ".prefixtrim-*.tmp"

// DefaultFileMode is used when the original's mode cannot be read.
const DefaultFileMode os.FileMode = 0644

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SourceMode returns the permission bits of the original file.
func SourceMode(path string) (os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, &WriteError{Type: SourceNotFound, Path: path, Err: err}
		}
		return 0, classify(path, err)
	}
	return info.Mode().Perm(), nil
}

// CheckTarget fails when targetPath cannot be overwritten by a regular file.
// A missing target or an existing regular file are both fine.
func CheckTarget(targetPath string) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return classify(targetPath, err)
	}
	if info.IsDir() {
		return &WriteError{
			Type: TargetIsDirectory,
			Path: targetPath,
			Err:  errors.New("a directory exists at the target path"),
		}
	}
	return nil
}

// WriteTrimmed writes content to targetPath, replacing any existing file.
func WriteTrimmed(targetPath, content string, perm os.FileMode) error {
	if err := os.WriteFile(targetPath, []byte(content), perm); err != nil {
		return classify(targetPath, err)
	}
	return nil
}

// StagedFile is trimmed content written to a temp file in the target's
// directory, waiting to be renamed over the target.
type StagedFile struct {
	TempPath   string
	TargetPath string
	committed  bool
}

// Stage writes content to a temp file beside targetPath.
func Stage(targetPath, content string, perm os.FileMode) (*StagedFile, error) {
	f, err := os.CreateTemp(filepath.Dir(targetPath), tempPattern)
	if err != nil {
		return nil, classify(filepath.Dir(targetPath), err)
	}
	tempPath := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tempPath)
		return nil, classify(tempPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return nil, classify(tempPath, err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return nil, classify(tempPath, err)
	}

	return &StagedFile{
		TempPath:   tempPath,
		TargetPath: targetPath,
	}, nil
}

// Commit renames the temp file over the target.
func (s *StagedFile) Commit() error {
	if s.committed {
		return nil
	}
	if err := os.Rename(s.TempPath, s.TargetPath); err != nil {
		return classify(s.TargetPath, err)
	}
	s.committed = true
	return nil
}

// Discard removes the temp file. It is a no-op after Commit.
func (s *StagedFile) Discard() error {
	if s.committed {
		return nil
	}
	if err := os.Remove(s.TempPath); err != nil && !os.IsNotExist(err) {
		return classify(s.TempPath, err)
	}
	return nil
}

// Committed reports whether the staged file has replaced its target.
func (s *StagedFile) Committed() bool {
	return s.committed
}

// Remove deletes a superseded original.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &WriteError{Type: SourceNotFound, Path: path, Err: err}
		}
		return classify(path, err)
	}
	return nil
}

// classify wraps err in a WriteError with a matching type.
func classify(path string, err error) error {
	if os.IsPermission(err) {
		return &WriteError{Type: PermissionDenied, Path: path, Err: err}
	}
	return &WriteError{Type: WriteFailed, Path: path, Err: err}
}
