package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStateCommandPlainOutput(t *testing.T) {
	dir := t.TempDir()
	stateDir := filepath.Join(dir, "state")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeStateFile(t, filepath.Join(stateDir, "transaction_ids.txt"),
		"12345,2026-03-15T12:00:00Z\n")
	writeStateFile(t, filepath.Join(stateDir, "published_transfers.txt"),
		"Alice Jones,Michigan Tech,Denver\n")

	target := filepath.Join(dir, "config.toml")
	writeStateFile(t, target, "[state]\ndir = \""+stateDir+"\"\n")

	out, err := runCommand(t, "state", "--plain", "--config", target)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "Remembered transactions (1):") {
		t.Fatalf("missing transactions heading: %q", out)
	}
	if !strings.Contains(out, "12345\t2026-03-15T12:00:00Z") {
		t.Fatalf("missing transaction row: %q", out)
	}
	if !strings.Contains(out, "Tracked transfers (1):") {
		t.Fatalf("missing transfers heading: %q", out)
	}
	// Date and position are absent for a 3-field record, leaving empty cells.
	if !strings.Contains(out, "\tAlice Jones\t\tMichigan Tech\tDenver") {
		t.Fatalf("missing transfer row: %q", out)
	}
}

func writeStateFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
