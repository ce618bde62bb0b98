package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	dbPath := filepath.Join(tmpDir, "blogpilot.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
}

func TestNewStore_InvalidDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	invalidPath := filepath.Join(tmpDir, "file.txt")
	_ = os.WriteFile(invalidPath, []byte("test"), 0644)

	_, err := NewStore(invalidPath)
	if err == nil {
		t.Error("Expected error when creating store in invalid directory")
	}
}

func TestRecord_Load(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Record("Understanding Docker Basics")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("Record should assign a non-empty ID")
	}
	if rec.UsedAt.IsZero() {
		t.Error("Record should assign a timestamp")
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Topic != "Understanding Docker Basics" {
		t.Errorf("Loaded topic = %q, want %q", records[0].Topic, "Understanding Docker Basics")
	}
}

func TestRecord_DuplicatesAllowed(t *testing.T) {
	store := newTestStore(t)

	// Exact-match prevention is advisory; the store itself must accept
	// the same topic text twice.
	if _, err := store.Record("Cloud Computing Guide"); err != nil {
		t.Fatalf("first Record failed: %v", err)
	}
	if _, err := store.Record("Cloud Computing Guide"); err != nil {
		t.Fatalf("second Record failed: %v", err)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestIsUsed(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Record("Understanding REST API Design"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	used, err := store.IsUsed("understanding rest api design")
	if err != nil {
		t.Fatalf("IsUsed failed: %v", err)
	}
	if !used {
		t.Error("IsUsed should match case-insensitively")
	}

	used, err = store.IsUsed("Something Completely Different")
	if err != nil {
		t.Fatalf("IsUsed failed: %v", err)
	}
	if used {
		t.Error("IsUsed should be false for an unknown topic")
	}
}

func TestFilterNew(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Record("Docker Basics"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	fresh := store.FilterNew([]string{"docker basics", "Kubernetes Operators", "SQL Joins Explained"})
	if len(fresh) != 2 {
		t.Fatalf("Expected 2 fresh candidates, got %d: %v", len(fresh), fresh)
	}
	for _, c := range fresh {
		if c == "docker basics" {
			t.Error("FilterNew should have dropped the used topic")
		}
	}
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)

	for _, topic := range []string{"One", "Two", "Three"} {
		if _, err := store.Record(topic); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalTopics != 3 {
		t.Errorf("TotalTopics = %d, want 3", stats.TotalTopics)
	}
	if len(stats.Recent) != 3 {
		t.Errorf("Recent length = %d, want 3", len(stats.Recent))
	}
	if stats.LastUsedAt.IsZero() {
		t.Error("LastUsedAt should be set")
	}
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)

	// Insert one old entry directly; Record always stamps "now".
	old := time.Now().UTC().Add(-90 * 24 * time.Hour)
	if _, err := store.db.Exec(
		`INSERT INTO used_topics (id, topic, used_at) VALUES (?, ?, ?)`,
		"old_entry", "Ancient Topic", old,
	); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.Record("Fresh Topic"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	pruned, err := store.Prune(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Prune removed %d entries, want 1", pruned)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 || records[0].Topic != "Fresh Topic" {
		t.Errorf("Expected only the fresh topic to survive, got %v", records)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
