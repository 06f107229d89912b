package orchestrator

import (
	"fmt"
	"time"
)

// RunSummary contains statistics from a trim run.
type RunSummary struct {
	Candidates   int           // Files of the language found in the directory
	Trimmed      int           // Trimmed copies written (or planned, for a dry run)
	Skipped      int           // Candidates not starting with the prefix
	Replacements int           // Content occurrences removed
	Deleted      int           // Originals deleted after confirmation
	Duration     time.Duration // Total processing time
	DryRun       bool
}

// GenerateSummary creates a summary from a run result.
func GenerateSummary(result *Result, deleted int, duration time.Duration) *RunSummary {
	if result == nil {
		return &RunSummary{Duration: duration}
	}

	return &RunSummary{
		Candidates:   len(result.Trimmed) + len(result.Skipped),
		Trimmed:      len(result.Trimmed),
		Skipped:      len(result.Skipped),
		Replacements: result.Replacements(),
		Deleted:      deleted,
		Duration:     duration,
		DryRun:       result.DryRun,
	}
}

// String returns a one-line summary.
func (s *RunSummary) String() string {
	verb := "trimmed"
	if s.DryRun {
		verb = "would trim"
	}
	return fmt.Sprintf("%s %d of %d files (%d replacements, %d skipped, %d originals deleted) in %s",
		verb, s.Trimmed, s.Candidates, s.Replacements, s.Skipped, s.Deleted, s.Duration.Round(time.Millisecond))
}
