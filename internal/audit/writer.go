package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditWriter appends events to the audit log.
// It implements append-only semantics with fail-fast behavior.
type AuditWriter struct {
	mu         sync.Mutex
	file       *os.File
	writer     *bufio.Writer
	logPath    string
	currentRun *RunID
}

// NewAuditWriter opens (creating if needed) the log in config.LogDirectory.
// A new log starts with a LOG_INITIALIZED event.
func NewAuditWriter(config AuditConfig) (*AuditWriter, error) {
	if !config.Enabled() {
		return nil, fmt.Errorf("audit log directory is not configured")
	}
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDirectory, LogFileName)

	isNewLog := false
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		isNewLog = true
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	w := &AuditWriter{
		file:    file,
		writer:  bufio.NewWriter(file),
		logPath: logPath,
	}

	if isNewLog {
		event := AuditEvent{
			Timestamp: time.Now().UTC(),
			EventType: EventLogInitialized,
			Status:    StatusSuccess,
		}
		if err := w.writeEventLocked(event); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write LOG_INITIALIZED event: %w", err)
		}
	}

	return w, nil
}

// GenerateRunID returns a new UUID v4 run id.
func GenerateRunID() RunID {
	return RunID(uuid.NewString())
}

// StartRun writes the RUN_START event and makes the run current.
func (w *AuditWriter) StartRun(params RunParams) (RunID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runID := GenerateRunID()
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		EventType: EventRunStart,
		Status:    StatusSuccess,
		Metadata: map[string]string{
			"directory": params.Directory,
			"language":  params.Language,
			"prefix":    params.Prefix,
			"staged":    strconv.FormatBool(params.Staged),
			"dryRun":    strconv.FormatBool(params.DryRun),
		},
	}

	if err := w.writeEventLocked(event); err != nil {
		return "", fmt.Errorf("failed to write RUN_START event: %w", err)
	}

	w.currentRun = &runID
	return runID, nil
}

// EndRun writes the RUN_END event with the run's summary.
func (w *AuditWriter) EndRun(status RunStatus, summary RunSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentRun == nil {
		return fmt.Errorf("no active run: call StartRun first")
	}

	opStatus := StatusSuccess
	if status != RunStatusCompleted {
		opStatus = StatusFailure
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		RunID:     *w.currentRun,
		EventType: EventRunEnd,
		Status:    opStatus,
		Metadata: map[string]string{
			"status":       string(status),
			"trimmed":      strconv.Itoa(summary.Trimmed),
			"skipped":      strconv.Itoa(summary.Skipped),
			"deleted":      strconv.Itoa(summary.Deleted),
			"replacements": strconv.Itoa(summary.Replacements),
			"errors":       strconv.Itoa(summary.Errors),
		},
	}

	if err := w.writeEventLocked(event); err != nil {
		return fmt.Errorf("failed to write RUN_END event: %w", err)
	}

	w.currentRun = nil
	return nil
}

// RecordTrim records a trimmed copy written for source.
func (w *AuditWriter) RecordTrim(source, dest string, replacements int, identity *FileIdentity) error {
	return w.record(AuditEvent{
		EventType:       EventTrim,
		Status:          StatusSuccess,
		SourcePath:      source,
		DestinationPath: dest,
		FileIdentity:    identity,
		Metadata:        map[string]string{"replacements": strconv.Itoa(replacements)},
	})
}

// RecordSkip records a candidate that does not start with the prefix.
func (w *AuditWriter) RecordSkip(source string) error {
	return w.record(AuditEvent{
		EventType:  EventSkip,
		Status:     StatusSkipped,
		SourcePath: source,
		ReasonCode: ReasonNoPrefix,
	})
}

// RecordDelete records a superseded original deleted after confirmation.
func (w *AuditWriter) RecordDelete(source string) error {
	return w.record(AuditEvent{
		EventType:  EventDelete,
		Status:     StatusSuccess,
		SourcePath: source,
	})
}

// RecordError records a failure that aborted the run.
func (w *AuditWriter) RecordError(source string, errType string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return w.record(AuditEvent{
		EventType:  EventError,
		Status:     StatusFailure,
		SourcePath: source,
		ErrorDetails: &ErrorDetails{
			ErrorType:    errType,
			ErrorMessage: msg,
		},
	})
}

// record stamps event with the current run and writes it.
func (w *AuditWriter) record(event AuditEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentRun == nil {
		return fmt.Errorf("no active run: call StartRun first")
	}
	event.Timestamp = time.Now().UTC()
	event.RunID = *w.currentRun
	return w.writeEventLocked(event)
}

// writeEventLocked marshals event as one line and syncs it to disk.
func (w *AuditWriter) writeEventLocked(event AuditEvent) error {
	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync event to disk: %w", err)
	}
	return nil
}

// CurrentRunID returns the current run ID, or nil if no run is active.
func (w *AuditWriter) CurrentRunID() *RunID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentRun
}

// LogPath returns the path to the audit log file.
func (w *AuditWriter) LogPath() string {
	return w.logPath
}

// Close flushes any buffered data and closes the audit log file.
func (w *AuditWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close audit log: %w", err)
	}
	return nil
}
