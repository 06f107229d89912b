package organizer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// readFile is a test helper returning a file's content.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// tempFiles lists staged temp files left in dir.
func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".prefixtrim-*"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestWriteTrimmedCreatesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "View.java")

	if err := WriteTrimmed(target, "first", DefaultFileMode); err != nil {
		t.Fatalf("WriteTrimmed failed: %v", err)
	}
	if err := WriteTrimmed(target, "second", DefaultFileMode); err != nil {
		t.Fatalf("WriteTrimmed overwrite failed: %v", err)
	}
	if got := readFile(t, target); got != "second" {
		t.Errorf("expected overwritten content, got %q", got)
	}
}

func TestWriteTrimmedOntoDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "View.java")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}

	err := WriteTrimmed(target, "x", DefaultFileMode)

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %T (%v)", err, err)
	}
	if writeErr.Path != target {
		t.Errorf("expected path %s, got %s", target, writeErr.Path)
	}
}

func TestCheckTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "View.java")
	if err := os.WriteFile(file, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "Model.java")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	if err := CheckTarget(filepath.Join(dir, "Missing.java")); err != nil {
		t.Errorf("missing target should be allowed, got %v", err)
	}
	if err := CheckTarget(file); err != nil {
		t.Errorf("existing file should be allowed, got %v", err)
	}

	err := CheckTarget(sub)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) || writeErr.Type != TargetIsDirectory {
		t.Errorf("expected TargetIsDirectory, got %v", err)
	}
}

func TestStageCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "View.java")
	if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	staged, err := Stage(target, "new", 0640)
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}

	if got := readFile(t, target); got != "old" {
		t.Errorf("target must not change before Commit, got %q", got)
	}
	if !strings.HasPrefix(filepath.Base(staged.TempPath), ".prefixtrim-") {
		t.Errorf("unexpected temp name %s", staged.TempPath)
	}

	if err := staged.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if !staged.Committed() {
		t.Error("expected Committed() after Commit")
	}
	if got := readFile(t, target); got != "new" {
		t.Errorf("expected committed content, got %q", got)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("expected mode 0640, got %v", info.Mode().Perm())
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("expected no temp files, got %v", left)
	}

	// Discard after Commit is a no-op.
	if err := staged.Discard(); err != nil {
		t.Errorf("Discard after Commit: %v", err)
	}
	if !FileExists(target) {
		t.Error("Discard after Commit removed the target")
	}
}

func TestStageDiscard(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "View.java")

	staged, err := Stage(target, "new", DefaultFileMode)
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := staged.Discard(); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}

	if FileExists(target) {
		t.Error("target must not exist after Discard")
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("expected no temp files, got %v", left)
	}
}

func TestStageMissingDirectory(t *testing.T) {
	_, err := Stage(filepath.Join(t.TempDir(), "gone", "View.java"), "x", DefaultFileMode)

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
}

func TestCommitOntoDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "View.java")

	staged, err := Stage(target, "new", DefaultFileMode)
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	// Give the directory an entry so rename cannot replace it.
	if err := os.WriteFile(filepath.Join(target, "keep"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	if err := staged.Commit(); err == nil {
		t.Fatal("expected Commit onto a directory to fail")
	}
	if staged.Committed() {
		t.Error("failed Commit must not mark the file committed")
	}
	if err := staged.Discard(); err != nil {
		t.Errorf("Discard failed: %v", err)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ABCView.java")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if FileExists(path) {
		t.Error("file still exists after Remove")
	}

	err := Remove(path)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) || writeErr.Type != SourceNotFound {
		t.Errorf("expected SourceNotFound on second Remove, got %v", err)
	}
}

func TestSourceMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ABCView.java")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatal(err)
	}

	mode, err := SourceMode(path)
	if err != nil {
		t.Fatalf("SourceMode failed: %v", err)
	}
	if mode != 0600 {
		t.Errorf("expected 0600, got %v", mode)
	}

	_, err = SourceMode(filepath.Join(dir, "missing.java"))
	var writeErr *WriteError
	if !errors.As(err, &writeErr) || writeErr.Type != SourceNotFound {
		t.Errorf("expected SourceNotFound, got %v", err)
	}
}
