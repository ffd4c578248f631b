package mergestore

import (
	"os"
	"path/filepath"
	"testing"

	"huskywatch/internal/logging"
)

func openAt(t *testing.T, content string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "published_transfers.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return store, path
}

func TestUpsertInsertsNewRecord(t *testing.T) {
	store, _ := openAt(t, "")

	result, record, undo := store.Upsert(Record{Name: "Bob Smith", Origin: "Michigan Tech"})
	if result != ResultNew {
		t.Fatalf("result: got %v, want %v", result, ResultNew)
	}
	if record.Destination != UnknownDestination {
		t.Fatalf("destination should default to %q, got %q", UnknownDestination, record.Destination)
	}
	if undo == nil {
		t.Fatal("new insert must provide undo")
	}

	undo()
	if store.Len() != 0 {
		t.Fatalf("undo should remove the insert, have %d records", store.Len())
	}
}

func TestUpsertUpgradesPendingRecordOnce(t *testing.T) {
	store, _ := openAt(t, "Bob Smith,Michigan Tech,?\n")

	result, record, _ := store.Upsert(Record{
		Name:        "Bo Smith",
		Position:    "F",
		Origin:      "Michigan Tech",
		Destination: "Denver",
	})
	if result != ResultUpgraded {
		t.Fatalf("result: got %v, want %v", result, ResultUpgraded)
	}
	if record.Destination != "Denver" {
		t.Fatalf("destination: got %q", record.Destination)
	}
	if record.Position != "F" {
		t.Fatalf("position should be filled on upgrade, got %q", record.Position)
	}

	// A later sighting with the same resolved destination must not fire again.
	result, _, _ = store.Upsert(Record{Name: "Bob Smith", Origin: "Michigan Tech", Destination: "Denver"})
	if result != ResultAlreadyPublished {
		t.Fatalf("second sighting: got %v, want %v", result, ResultAlreadyPublished)
	}
}

func TestUpsertUndoRevertsUpgrade(t *testing.T) {
	store, _ := openAt(t, "Bob Smith,Michigan Tech,?\n")

	result, record, undo := store.Upsert(Record{Name: "Bob Smith", Origin: "Michigan Tech", Destination: "Denver"})
	if result != ResultUpgraded {
		t.Fatalf("result: got %v", result)
	}
	undo()
	if record.Resolved() {
		t.Fatalf("undo should restore pending state, got destination %q", record.Destination)
	}
}

func TestUpsertBothPendingKeepsStrongerPosition(t *testing.T) {
	store, _ := openAt(t, "")

	store.Upsert(Record{Name: "Bob Smith", Origin: "Michigan Tech"})
	result, record, _ := store.Upsert(Record{Name: "Bob Smith", Position: "D", Origin: "Michigan Tech"})
	if result != ResultAlreadyPublished {
		t.Fatalf("result: got %v, want %v", result, ResultAlreadyPublished)
	}
	if record.Position != "D" {
		t.Fatalf("position should upgrade to known value, got %q", record.Position)
	}
	if store.Len() != 1 {
		t.Fatalf("duplicate pending sighting must not insert, have %d", store.Len())
	}
}

func TestUpsertDatedSourcesUseCompoundKey(t *testing.T) {
	store, _ := openAt(t, "")

	store.Upsert(Record{Date: "3/1", Name: "Bo Smith", Origin: "Denver"})
	result, _, _ := store.Upsert(Record{Date: "3/2", Name: "Bob Smith", Origin: "Denver"})
	if result != ResultNew {
		t.Fatalf("different dates must stay distinct, got %v", result)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 records, have %d", store.Len())
	}

	result, _, _ = store.Upsert(Record{Date: "3/1", Name: "Bob Smith", Origin: "Denver"})
	if result != ResultAlreadyPublished {
		t.Fatalf("same date and name must match, got %v", result)
	}
}

func TestNameOnlyCandidateMatchesDatedRecord(t *testing.T) {
	store, _ := openAt(t, "3/1,Bob Smith,F,Denver,?\n")

	result, _, _ := store.Upsert(Record{Name: "Bob Smith", Origin: "Denver", Destination: "Clarkson"})
	if result != ResultUpgraded {
		t.Fatalf("name-only source should match on identity alone, got %v", result)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	store, path := openAt(t, "")

	store.Upsert(Record{Date: "3/1", Name: "Bob Smith", Position: "F", Origin: "Michigan Tech", Destination: "Denver"})
	store.Upsert(Record{Name: "Al Jones", Origin: "Michigan Tech"})

	if err := store.Persist(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "3/1,Bob Smith,F,Michigan Tech,Denver\nAl Jones,Michigan Tech,?\n"
	if string(data) != want {
		t.Fatalf("persist format mismatch:\n got %q\nwant %q", data, want)
	}

	reloaded, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("reload count: got %d, want 2", reloaded.Len())
	}
	if !reloaded.Records()[0].Resolved() || reloaded.Records()[1].Resolved() {
		t.Fatal("resolved flags lost in round trip")
	}
}

func TestOpenDropsCorruptedLines(t *testing.T) {
	store, _ := openAt(t, "Bob Smith,Michigan Tech,?\ngarbage line\na,b\n")
	if store.Len() != 1 {
		t.Fatalf("expected 1 parsed record, got %d", store.Len())
	}
}
