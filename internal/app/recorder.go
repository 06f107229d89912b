package app

import (
	"errors"

	"prefixtrim/internal/audit"
	"prefixtrim/internal/orchestrator"
	"prefixtrim/internal/organizer"
	"prefixtrim/internal/output"
)

// recorder forwards trim events to verbose output, the progress line and the
// audit log. Audit write failures are reported as warnings and never stop a
// run.
type recorder struct {
	out       *output.Output
	writer    *audit.AuditWriter
	processed int
	errors    int
}

func (rec *recorder) handle(e orchestrator.Event) {
	switch e.Action {
	case orchestrator.ActionTrim:
		rec.processed++
		rec.out.UpdateProgress(rec.processed, "")
		rec.out.Verbose("TRIM %s -> %s (%d replacements)", e.SourcePath, e.TargetPath, e.Replacements)
		if rec.writer != nil {
			// The original may already be gone when another copy replaced it.
			identity, _ := audit.CaptureIdentity(e.SourcePath)
			rec.audit(rec.writer.RecordTrim(e.SourcePath, e.TargetPath, e.Replacements, identity))
		}
	case orchestrator.ActionSkip:
		rec.processed++
		rec.out.UpdateProgress(rec.processed, "")
		rec.out.Verbose("SKIP %s", e.SourcePath)
		if rec.writer != nil {
			rec.audit(rec.writer.RecordSkip(e.SourcePath))
		}
	case orchestrator.ActionDelete:
		rec.out.Verbose("DELETE %s", e.SourcePath)
		if rec.writer != nil {
			rec.audit(rec.writer.RecordDelete(e.SourcePath))
		}
	case orchestrator.ActionError:
		rec.errors++
		rec.out.Error("Error: %s: %v", e.SourcePath, e.Err)
		if rec.writer != nil {
			rec.audit(rec.writer.RecordError(e.SourcePath, errorType(e.Err), e.Err))
		}
	}
}

// end closes the audit run, if one is open.
func (rec *recorder) end(status audit.RunStatus, result *orchestrator.Result, deleted []string) {
	if rec.writer == nil {
		return
	}
	summary := audit.RunSummary{
		Deleted: len(deleted),
		Errors:  rec.errors,
	}
	if result != nil {
		summary.Trimmed = len(result.Trimmed)
		summary.Skipped = len(result.Skipped)
		summary.Replacements = result.Replacements()
	}
	rec.audit(rec.writer.EndRun(status, summary))
}

func (rec *recorder) audit(err error) {
	if err != nil {
		rec.out.Warn("Warning: audit log: %v", err)
	}
}

// errorType names the error class recorded in the audit log.
func errorType(err error) string {
	var writeErr *organizer.WriteError
	if errors.As(err, &writeErr) {
		return string(writeErr.Type)
	}
	var trimErr *orchestrator.TrimError
	if errors.As(err, &trimErr) {
		return string(trimErr.Type)
	}
	return string(orchestrator.IOFailure)
}
