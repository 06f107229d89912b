// Package scanner lists the candidate source files of a directory.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"prefixtrim/internal/language"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return string(e.Type) + ": " + e.Path + ": " + e.Err.Error()
	}
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOptions configures candidate selection.
type ScanOptions struct {
	// Exclude holds doublestar globs matched against the file name.
	Exclude []string
}

// SourceFile is one on-disk file matched by extension.
type SourceFile struct {
	Dir      string // Absolute directory path
	Name     string // File name with extension
	Ext      string // Extension, including the dot
	FullPath string // Absolute path
}

// Read returns the full text content of the file.
func (f SourceFile) Read() (string, error) {
	data, err := os.ReadFile(f.FullPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListCandidates enumerates the immediate files of directory whose extension
// is exactly "." + lang. Subdirectories are never descended into.
// Candidates are sorted by name so that the first one is stable.
func ListCandidates(directory string, lang language.Language) ([]SourceFile, error) {
	return ListCandidatesWithOptions(directory, lang, ScanOptions{})
}

// ListCandidatesWithOptions is ListCandidates with exclusion globs.
func ListCandidatesWithOptions(directory string, lang language.Language, opts ScanOptions) ([]SourceFile, error) {
	if err := checkDirectory(directory); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		absDir = directory
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return nil, err
	}

	filter := NewFileFilter(opts.Exclude)
	ext := lang.Extension()

	files := []SourceFile{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue // Directories, symlinks, devices
		}
		name := entry.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		if filter.ShouldIgnore(name) {
			continue
		}
		files = append(files, SourceFile{
			Dir:      absDir,
			Name:     name,
			Ext:      ext,
			FullPath: filepath.Join(absDir, name),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// checkDirectory verifies that directory exists and is a directory.
func checkDirectory(directory string) error {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return &ScanError{
				Type: DirectoryNotFound,
				Path: directory,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return err
	}

	if !info.IsDir() {
		return &ScanError{
			Type: DirectoryNotFound,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}
	return nil
}
