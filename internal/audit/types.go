// Package audit provides an append-only trail of trim runs: every trimmed
// copy, skipped candidate and deleted original is recorded as one JSON line.
package audit

import "time"

// RunID is a unique identifier for each trim run (UUID v4).
type RunID string

// EventType represents the type of audit event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// File events
	EventTrim   EventType = "TRIM"
	EventSkip   EventType = "SKIP"
	EventDelete EventType = "DELETE"
	EventError  EventType = "ERROR"

	// System events
	EventLogInitialized EventType = "LOG_INITIALIZED"
)

// OperationStatus represents the outcome of an operation.
type OperationStatus string

const (
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailure OperationStatus = "FAILURE"
	StatusSkipped OperationStatus = "SKIPPED"
)

// ReasonCode provides detail for skipped files.
type ReasonCode string

const (
	ReasonNoPrefix ReasonCode = "NO_PREFIX"
)

// RunStatus represents the status of a run.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "IN_PROGRESS"
	RunStatusCompleted  RunStatus = "COMPLETED"
	RunStatusFailed     RunStatus = "FAILED"
)

// FileIdentity captures the content of a superseded original.
type FileIdentity struct {
	ContentHash string    `json:"contentHash"` // SHA-256 hex string
	Size        int64     `json:"size"`        // File size in bytes
	ModTime     time.Time `json:"modTime"`     // File modification timestamp
}

// ErrorDetails contains detailed information about an error.
type ErrorDetails struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// AuditEvent represents a single audit record.
type AuditEvent struct {
	Timestamp       time.Time         `json:"timestamp"`
	RunID           RunID             `json:"runId"`
	EventType       EventType         `json:"eventType"`
	Status          OperationStatus   `json:"status"`
	SourcePath      string            `json:"sourcePath,omitempty"`
	DestinationPath string            `json:"destinationPath,omitempty"`
	ReasonCode      ReasonCode        `json:"reasonCode,omitempty"`
	FileIdentity    *FileIdentity     `json:"fileIdentity,omitempty"`
	ErrorDetails    *ErrorDetails     `json:"errorDetails,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// RunParams describes what a run was asked to do.
type RunParams struct {
	Directory string
	Language  string
	Prefix    string
	Staged    bool
	DryRun    bool
}

// RunSummary contains statistics for a completed run.
type RunSummary struct {
	Trimmed      int `json:"trimmed"`
	Skipped      int `json:"skipped"`
	Deleted      int `json:"deleted"`
	Replacements int `json:"replacements"`
	Errors       int `json:"errors"`
}

// RunInfo contains metadata and summary for a run.
type RunInfo struct {
	RunID     RunID      `json:"runId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    RunStatus  `json:"status"`
	Directory string     `json:"directory"`
	Language  string     `json:"language"`
	Prefix    string     `json:"prefix"`
	Summary   RunSummary `json:"summary"`
}

// AuditConfig holds configuration for the audit system.
type AuditConfig struct {
	// LogDirectory holds the log file; empty disables auditing.
	LogDirectory string `yaml:"logDirectory"`
}

// Enabled reports whether auditing is configured.
func (c AuditConfig) Enabled() bool {
	return c.LogDirectory != ""
}

// LogFileName is the name of the log file inside LogDirectory.
const LogFileName = "prefixtrim-audit.jsonl"
