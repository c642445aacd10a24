package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2023, 8, 9, 12, 0, 0, 0, time.UTC)
	runs := []*Run{
		{StartedAt: base, Mode: "@world", Success: true, Updates: 3, LogPath: "/var/log/gentoo-update/log_1"},
		{StartedAt: base.Add(time.Hour), Mode: "GLSA", Success: false, NewPackages: 1},
		{StartedAt: base.Add(2 * time.Hour), Mode: "@world", Success: true, Uninstalls: 2},
	}
	for _, run := range runs {
		if err := store.Record(run); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	got, err := store.List(0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}

	// Newest first
	if got[0].Mode != "@world" || got[0].Uninstalls != 2 {
		t.Errorf("newest run = %+v", got[0])
	}
	if got[2].Updates != 3 {
		t.Errorf("oldest run = %+v", got[2])
	}
}

func TestStore_ListLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		run := &Run{StartedAt: time.Now().Add(time.Duration(i) * time.Minute), Mode: "@world"}
		if err := store.Record(run); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.List(2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d runs, want 2", len(got))
	}
}

func TestStore_RecordFillsStartedAt(t *testing.T) {
	store := openTestStore(t)

	run := &Run{Mode: "@world"}
	if err := store.Record(run); err != nil {
		t.Fatal(err)
	}
	if run.StartedAt.IsZero() {
		t.Error("Record should default StartedAt to now")
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Record(&Run{Mode: "GLSA", Success: true}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Mode != "GLSA" {
		t.Errorf("reopened store runs = %+v", got)
	}
}
