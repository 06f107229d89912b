package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"infer", "list", "trim", "history"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered: %v", name, err)
		}
	}

	trim, _, _ := root.Find([]string{"trim"})
	for _, flag := range []string{"prefix", "yes", "delete", "dry-run", "legacy"} {
		if trim.Flags().Lookup(flag) == nil {
			t.Errorf("trim is missing --%s", flag)
		}
	}
	for _, flag := range []string{"lang", "config", "exclude", "audit-dir", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root is missing --%s", flag)
		}
	}
}

func TestTrimCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ABCFoo.java"), []byte("class ABCFoo {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"trim", dir, "--lang", "java", "--prefix", "ABC", "--dry-run"})
	if err := root.Execute(); err != nil {
		t.Fatalf("trim --dry-run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Foo.java")); !os.IsNotExist(err) {
		t.Error("dry run must not write Foo.java")
	}
}

func TestTrimCommandRequiresDirectory(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"trim", "--lang", "java"})
	if err := root.Execute(); err == nil {
		t.Error("expected an error without a directory argument")
	}
}

func TestInferCommandWithoutLanguage(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"infer", t.TempDir()})
	if err := root.Execute(); err == nil {
		t.Error("expected an error without --lang")
	}
}
