package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// AuditReader reads events and run summaries from the audit log.
type AuditReader struct {
	logDir string
}

// NewAuditReader creates a new AuditReader for the given log directory.
func NewAuditReader(logDir string) *AuditReader {
	return &AuditReader{
		logDir: logDir,
	}
}

// LogPath returns the path of the log file read.
func (r *AuditReader) LogPath() string {
	return filepath.Join(r.logDir, LogFileName)
}

// ReadEvents returns every event in the log, in write order.
// A missing log yields no events. A truncated last line is ignored.
func (r *AuditReader) ReadEvents() ([]AuditEvent, error) {
	file, err := os.Open(r.LogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	var events []AuditEvent
	var pendingErr error
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if pendingErr != nil {
			// A corrupt line followed by more data is not a torn write.
			return nil, pendingErr
		}
		event, err := UnmarshalJSONLine(line)
		if err != nil {
			pendingErr = fmt.Errorf("corrupt audit log at line %d: %w", lineNum, err)
			continue
		}
		events = append(events, *event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return events, nil
}

// ListRuns returns every run in the log, newest first.
func (r *AuditReader) ListRuns() ([]RunInfo, error) {
	events, err := r.ReadEvents()
	if err != nil {
		return nil, err
	}

	runs := make(map[RunID]*RunInfo)
	var order []RunID
	for _, event := range events {
		if event.RunID == "" {
			continue
		}
		info, ok := runs[event.RunID]
		if !ok {
			info = &RunInfo{RunID: event.RunID, Status: RunStatusInProgress}
			runs[event.RunID] = info
			order = append(order, event.RunID)
		}
		applyEvent(info, event)
	}

	result := make([]RunInfo, 0, len(order))
	for _, id := range order {
		result = append(result, *runs[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

// applyEvent folds one event into a run summary.
func applyEvent(info *RunInfo, event AuditEvent) {
	switch event.EventType {
	case EventRunStart:
		info.StartTime = event.Timestamp
		info.Directory = event.Metadata["directory"]
		info.Language = event.Metadata["language"]
		info.Prefix = event.Metadata["prefix"]
	case EventRunEnd:
		end := event.Timestamp
		info.EndTime = &end
		info.Status = RunStatus(event.Metadata["status"])
	case EventTrim:
		info.Summary.Trimmed++
		if n, err := strconv.Atoi(event.Metadata["replacements"]); err == nil {
			info.Summary.Replacements += n
		}
	case EventSkip:
		info.Summary.Skipped++
	case EventDelete:
		info.Summary.Deleted++
	case EventError:
		info.Summary.Errors++
	}
}

// Duration returns how long the run took, or zero if it never ended.
func (i RunInfo) Duration() time.Duration {
	if i.EndTime == nil {
		return 0
	}
	return i.EndTime.Sub(i.StartTime)
}
