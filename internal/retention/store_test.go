package retention

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"huskywatch/internal/logging"
)

func storeAt(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transaction_ids.txt")
	return NewStore(path, logging.NewNop()), path
}

func TestLoadEvictsExpiredKeys(t *testing.T) {
	store, path := storeAt(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 14 * 24 * time.Hour

	fresh := "1001," + now.Add(-2*24*time.Hour).Format(time.RFC3339Nano)
	boundary := "1002," + now.Add(-window).Format(time.RFC3339Nano)
	stale := "1003," + now.Add(-30*24*time.Hour).Format(time.RFC3339Nano)
	content := strings.Join([]string{fresh, boundary, stale}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	known, err := store.Load(now, window)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := known["1001"]; !ok {
		t.Fatal("fresh key missing from load result")
	}
	if _, ok := known["1002"]; ok {
		t.Fatal("key exactly at window age must be evicted")
	}
	if _, ok := known["1003"]; ok {
		t.Fatal("stale key must be evicted")
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(rewritten), "1003") || strings.Contains(string(rewritten), "1002") {
		t.Fatalf("expired keys survived rewrite: %q", rewritten)
	}
	if !strings.Contains(string(rewritten), "1001") {
		t.Fatalf("fresh key lost in rewrite: %q", rewritten)
	}
}

func TestLoadDropsCorruptedLines(t *testing.T) {
	store, path := storeAt(t)
	now := time.Now().UTC()

	good := "2001," + now.Format(time.RFC3339Nano)
	content := good + "\nnot a record\n3003,yesterday-ish\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	known, err := store.Load(now, 14*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(known) != 1 {
		t.Fatalf("expected 1 surviving key, got %d", len(known))
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(rewritten), "not a record") {
		t.Fatalf("corrupted line survived rewrite: %q", rewritten)
	}
}

func TestLoadParsesLegacyTimestamps(t *testing.T) {
	store, path := storeAt(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	legacy := "4001,2026-02-27 08:30:00.123456\n"
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	known, err := store.Load(now, 14*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := known["4001"]; !ok {
		t.Fatal("legacy-format record should load")
	}
}

func TestRememberAppends(t *testing.T) {
	store, path := storeAt(t)
	now := time.Now().UTC()

	if err := store.Remember("5001", now); err != nil {
		t.Fatal(err)
	}
	if err := store.Remember("5002", now); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "5001,") || !strings.HasPrefix(lines[1], "5002,") {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestLoadMissingFileReturnsEmptySet(t *testing.T) {
	store, _ := storeAt(t)
	known, err := store.Load(time.Now(), 14*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(known) != 0 {
		t.Fatalf("expected empty set, got %v", known)
	}
}
