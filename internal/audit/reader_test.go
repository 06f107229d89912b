package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadEventsMissingLog(t *testing.T) {
	events, err := NewAuditReader(t.TempDir()).ReadEvents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestReadEventsIgnoresTornLastLine(t *testing.T) {
	dir := t.TempDir()
	content := `{"timestamp":"2026-03-01T12:00:00Z","runId":"r1","eventType":"RUN_START","status":"SUCCESS"}` + "\n" +
		`{"timestamp":"2026-03-01T12:00:01Z","runId":"r1","eventTy`
	if err := os.WriteFile(filepath.Join(dir, LogFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	events, err := NewAuditReader(dir).ReadEvents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestReadEventsRejectsCorruptMiddleLine(t *testing.T) {
	dir := t.TempDir()
	content := "not json\n" +
		`{"timestamp":"2026-03-01T12:00:00Z","runId":"r1","eventType":"RUN_START","status":"SUCCESS"}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, LogFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewAuditReader(dir).ReadEvents(); err == nil {
		t.Error("expected an error for a corrupt line followed by data")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	w, dir := newTestWriter(t)

	first, err := w.StartRun(RunParams{Prefix: "ABC"})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.EndRun(RunStatusCompleted, RunSummary{}); err != nil {
		t.Fatal(err)
	}
	second, err := w.StartRun(RunParams{Prefix: "XYZ"})
	if err != nil {
		t.Fatal(err)
	}

	runs, err := NewAuditReader(dir).ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Timestamps may share a second; stable sort keeps write order for ties.
	ids := map[RunID]RunInfo{runs[0].RunID: runs[0], runs[1].RunID: runs[1]}
	if ids[first].Status != RunStatusCompleted {
		t.Errorf("expected first run completed, got %s", ids[first].Status)
	}
	if ids[second].Status != RunStatusInProgress {
		t.Errorf("expected second run in progress, got %s", ids[second].Status)
	}
}
