// Package orchestrator coordinates candidate selection, prefix inference and
// the trim workflow for prefixtrim.
package orchestrator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"prefixtrim/internal/language"
	"prefixtrim/internal/matcher"
	"prefixtrim/internal/normalizer"
	"prefixtrim/internal/organizer"
	"prefixtrim/internal/scanner"
)

// Options configures a trim run.
type Options struct {
	// Staged writes every trimmed copy to a temp file first and renames them
	// into place only when all of them were written. A failure while staging
	// leaves the directory untouched.
	Staged bool
	// DryRun computes the plan without touching the filesystem.
	DryRun bool
	// Exclude holds doublestar globs matched against candidate file names.
	Exclude []string
	// OnEvent, if set, is called for every file processed.
	OnEvent func(Event)
}

// DefaultOptions returns staged, non-dry-run options.
func DefaultOptions() Options {
	return Options{Staged: true}
}

// Action identifies what happened to a file.
type Action string

const (
	ActionTrim   Action = "TRIM"
	ActionSkip   Action = "SKIP"
	ActionDelete Action = "DELETE"
	ActionError  Action = "ERROR"
)

// Event reports the outcome for one file.
type Event struct {
	Action       Action
	SourcePath   string
	TargetPath   string
	Replacements int
	Err          error
}

// TrimmedFile pairs a superseded original with the copy written for it.
type TrimmedFile struct {
	Source       scanner.SourceFile
	NewName      string
	TargetPath   string
	Replacements int
}

// Result is the outcome of a trim run.
type Result struct {
	Directory string
	Language  language.Language
	Prefix    string // Canonical form
	DryRun    bool
	Trimmed   []TrimmedFile
	Skipped   []scanner.SourceFile
}

// Written returns the paths of the trimmed copies.
func (r *Result) Written() []string {
	paths := make([]string, len(r.Trimmed))
	for i, t := range r.Trimmed {
		paths[i] = t.TargetPath
	}
	return paths
}

// Superseded returns the originals replaced by a trimmed copy.
func (r *Result) Superseded() []scanner.SourceFile {
	files := make([]scanner.SourceFile, len(r.Trimmed))
	for i, t := range r.Trimmed {
		files[i] = t.Source
	}
	return files
}

// Replacements returns the number of content occurrences removed.
func (r *Result) Replacements() int {
	total := 0
	for _, t := range r.Trimmed {
		total += t.Replacements
	}
	return total
}

// Orchestrator runs the trim workflow with fixed options.
type Orchestrator struct {
	opts Options
}

// New creates an Orchestrator with the given options.
func New(opts Options) *Orchestrator {
	return &Orchestrator{opts: opts}
}

// ListCandidates returns the files of directory written in lang, sorted by name.
func (o *Orchestrator) ListCandidates(directory string, lang language.Language) ([]scanner.SourceFile, error) {
	if !lang.Valid() {
		return nil, ErrNoLanguageSelected
	}
	if directory == "" {
		return nil, invalidInput("directory must not be empty")
	}

	files, err := scanner.ListCandidatesWithOptions(directory, lang, scanner.ScanOptions{Exclude: o.opts.Exclude})
	if err != nil {
		return nil, scanFailure(directory, err)
	}
	return files, nil
}

// InferPrefix samples the first candidate of directory and returns its
// leading characters. It fails with NoMatchingFiles when there is none.
func (o *Orchestrator) InferPrefix(directory string, lang language.Language) (string, error) {
	files, err := o.ListCandidates(directory, lang)
	if err != nil {
		return "", err
	}

	prefix, ok := matcher.InferPrefix(files)
	if !ok {
		return "", &TrimError{
			Type:    NoMatchingFiles,
			Message: "no " + lang.String() + " files exist in this directory",
			Path:    directory,
		}
	}
	return prefix, nil
}

// TrimAll strips prefix from the name and contents of every candidate whose
// name starts with it, writing each result beside its original. Originals
// are left in place; see DeleteSuperseded.
//
// On an I/O failure the run stops. In staged mode nothing has been written
// unless the failure happened while renaming staged files into place; in
// direct mode copies written earlier stay. Either way the returned Result
// lists what was written before the failure.
func (o *Orchestrator) TrimAll(directory string, lang language.Language, prefix string) (*Result, error) {
	if !lang.Valid() {
		return nil, ErrNoLanguageSelected
	}
	if directory == "" || matcher.Canonicalize(prefix) == "" {
		return nil, invalidInput("directory and prefix must not be empty")
	}

	// Re-list at trim time: an earlier listing may be stale.
	files, err := o.ListCandidates(directory, lang)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Directory: directory,
		Language:  lang,
		Prefix:    matcher.Canonicalize(prefix),
		DryRun:    o.opts.DryRun,
	}

	switch {
	case o.opts.DryRun:
		err = o.plan(files, result)
	case o.opts.Staged:
		err = o.trimStaged(files, result)
	default:
		err = o.trimDirect(files, result)
	}
	return result, err
}

// plan fills result without writing anything.
func (o *Orchestrator) plan(files []scanner.SourceFile, result *Result) error {
	for _, file := range files {
		tf, _, ok, err := o.prepare(file, result)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		result.Trimmed = append(result.Trimmed, tf)
		o.emit(Event{Action: ActionTrim, SourcePath: file.FullPath, TargetPath: tf.TargetPath, Replacements: tf.Replacements})
	}
	return nil
}

// trimDirect writes each trimmed copy as soon as it is computed.
func (o *Orchestrator) trimDirect(files []scanner.SourceFile, result *Result) error {
	for _, file := range files {
		tf, content, ok, err := o.prepare(file, result)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		mode, err := organizer.SourceMode(file.FullPath)
		if err != nil {
			return o.fail(file.FullPath, err)
		}
		if err := organizer.WriteTrimmed(tf.TargetPath, content, mode); err != nil {
			return o.fail(tf.TargetPath, err)
		}

		result.Trimmed = append(result.Trimmed, tf)
		o.emit(Event{Action: ActionTrim, SourcePath: file.FullPath, TargetPath: tf.TargetPath, Replacements: tf.Replacements})
	}
	return nil
}

// trimStaged stages every copy before renaming any of them into place.
func (o *Orchestrator) trimStaged(files []scanner.SourceFile, result *Result) error {
	var staged []*organizer.StagedFile
	var pending []TrimmedFile

	discardAll := func() {
		for _, s := range staged {
			s.Discard()
		}
	}

	for _, file := range files {
		tf, content, ok, err := o.prepare(file, result)
		if err != nil {
			discardAll()
			return err
		}
		if !ok {
			continue
		}

		if err := organizer.CheckTarget(tf.TargetPath); err != nil {
			discardAll()
			return o.fail(tf.TargetPath, err)
		}
		mode, err := organizer.SourceMode(file.FullPath)
		if err != nil {
			discardAll()
			return o.fail(file.FullPath, err)
		}
		s, err := organizer.Stage(tf.TargetPath, content, mode)
		if err != nil {
			discardAll()
			return o.fail(tf.TargetPath, err)
		}

		staged = append(staged, s)
		pending = append(pending, tf)
	}

	for i, s := range staged {
		if err := s.Commit(); err != nil {
			discardAll()
			return o.fail(s.TargetPath, err)
		}
		tf := pending[i]
		result.Trimmed = append(result.Trimmed, tf)
		o.emit(Event{Action: ActionTrim, SourcePath: tf.Source.FullPath, TargetPath: tf.TargetPath, Replacements: tf.Replacements})
	}
	return nil
}

// prepare matches, reads and normalizes one candidate. ok is false when the
// file does not start with the prefix, or when nothing but the extension
// would remain; it is then recorded as skipped.
func (o *Orchestrator) prepare(file scanner.SourceFile, result *Result) (TrimmedFile, string, bool, error) {
	match := matcher.Match(file.Name, result.Prefix)
	if !match.Matched || strings.TrimSuffix(match.NewName, file.Ext) == "" {
		result.Skipped = append(result.Skipped, file)
		o.emit(Event{Action: ActionSkip, SourcePath: file.FullPath})
		return TrimmedFile{}, "", false, nil
	}

	content, err := file.Read()
	if err != nil {
		return TrimmedFile{}, "", false, o.fail(file.FullPath, err)
	}

	normalized := normalizer.Normalize(content, result.Language, result.Prefix)

	return TrimmedFile{
		Source:       file,
		NewName:      match.NewName,
		TargetPath:   filepath.Join(file.Dir, match.NewName),
		Replacements: normalized.Replacements,
	}, normalized.Content, true, nil
}

// DeleteSuperseded removes the originals of result, but only when confirmed
// is true. Declining leaves originals beside their trimmed copies. An
// original that was itself overwritten by another file's trimmed copy is
// kept. The first failure stops deletion.
func (o *Orchestrator) DeleteSuperseded(result *Result, confirmed bool) ([]string, error) {
	if result == nil || !confirmed || result.DryRun {
		return nil, nil
	}

	written := make(map[string]bool, len(result.Trimmed))
	for _, p := range result.Written() {
		written[p] = true
	}

	var deleted []string
	for _, file := range result.Superseded() {
		if written[file.FullPath] {
			continue
		}
		if err := organizer.Remove(file.FullPath); err != nil {
			return deleted, o.fail(file.FullPath, err)
		}
		deleted = append(deleted, file.FullPath)
		o.emit(Event{Action: ActionDelete, SourcePath: file.FullPath})
	}
	return deleted, nil
}

func (o *Orchestrator) emit(e Event) {
	if o.opts.OnEvent != nil {
		o.opts.OnEvent(e)
	}
}

// fail reports err as an ERROR event and wraps it as an IOFailure.
func (o *Orchestrator) fail(path string, err error) error {
	o.emit(Event{Action: ActionError, SourcePath: path, Err: err})
	return ioFailure(path, err)
}

// scanFailure maps scanner errors onto the trim error taxonomy.
func scanFailure(directory string, err error) error {
	var scanErr *scanner.ScanError
	if errors.As(err, &scanErr) && scanErr.Type == scanner.DirectoryNotFound {
		return &TrimError{Type: DirectoryNotFound, Message: "selected directory does not exist", Path: directory, Err: err}
	}
	if os.IsNotExist(err) {
		return &TrimError{Type: DirectoryNotFound, Message: "selected directory does not exist", Path: directory, Err: err}
	}
	return ioFailure(directory, err)
}

// ListCandidates lists candidates with DefaultOptions.
func ListCandidates(directory string, lang language.Language) ([]scanner.SourceFile, error) {
	return New(DefaultOptions()).ListCandidates(directory, lang)
}

// InferPrefix infers a prefix with DefaultOptions.
func InferPrefix(directory string, lang language.Language) (string, error) {
	return New(DefaultOptions()).InferPrefix(directory, lang)
}

// TrimAll trims with DefaultOptions.
func TrimAll(directory string, lang language.Language, prefix string) (*Result, error) {
	return New(DefaultOptions()).TrimAll(directory, lang, prefix)
}
