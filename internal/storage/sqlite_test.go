package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, rec SessionRecord) int64 {
	t.Helper()
	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs migrations against the existing schema.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tetris", "history.db")); err != nil {
		t.Errorf("database should live under HOME: %v", err)
	}
}

func TestSaveSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	played := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	id := save(t, store, SessionRecord{
		GameID:    "tetris",
		Player:    "alice",
		Spawned:   12,
		Locked:    11,
		Ticks:     3600,
		Duration:  61500 * time.Millisecond,
		TopOut:    true,
		CreatedAt: played,
	})
	if id <= 0 {
		t.Errorf("expected positive ID, got %d", id)
	}

	recs, err := store.RecentSessions("tetris", 0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 session, got %d", len(recs))
	}

	got := recs[0]
	if got.ID != id || got.Player != "alice" || got.Spawned != 12 || got.Locked != 11 || got.Ticks != 3600 {
		t.Errorf("unexpected record %+v", got)
	}
	if got.Duration != 61500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1m1.5s", got.Duration)
	}
	if !got.TopOut {
		t.Error("TopOut should round-trip")
	}
	if !got.CreatedAt.Equal(played) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, played)
	}
}

func TestRecentAndBestOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, locked := range []int{5, 20, 1, 20} {
		save(t, store, SessionRecord{GameID: "tetris", Locked: locked, Spawned: locked + 1})
	}
	save(t, store, SessionRecord{GameID: "other", Locked: 99})

	recent, err := store.RecentSessions("tetris", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	wantRecent := []int{20, 1, 20}
	if len(recent) != len(wantRecent) {
		t.Fatalf("expected %d sessions, got %d", len(wantRecent), len(recent))
	}
	for i, want := range wantRecent {
		if recent[i].Locked != want {
			t.Errorf("recent[%d].Locked = %d, expected %d", i, recent[i].Locked, want)
		}
	}
	if recent[0].ID <= recent[1].ID {
		t.Error("recent sessions should be newest first")
	}

	best, err := store.BestSessions("tetris", 10)
	if err != nil {
		t.Fatalf("BestSessions() failed: %v", err)
	}
	wantBest := []int{20, 20, 5, 1}
	if len(best) != len(wantBest) {
		t.Fatalf("expected %d sessions, got %d", len(wantBest), len(best))
	}
	for i, want := range wantBest {
		if best[i].Locked != want {
			t.Errorf("best[%d].Locked = %d, expected %d", i, best[i].Locked, want)
		}
	}
	if best[0].ID >= best[1].ID {
		t.Error("ties should keep the earlier session first")
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("tetris")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Sessions != 0 || empty.MaxLocked != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats should be zero, got %+v", empty)
	}

	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	save(t, store, SessionRecord{GameID: "tetris", Locked: 4, Ticks: 100, CreatedAt: last.Add(-time.Hour)})
	save(t, store, SessionRecord{GameID: "tetris", Locked: 10, Ticks: 250, CreatedAt: last})

	stats, err := store.Stats("tetris")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 2 {
		t.Errorf("Sessions = %d, expected 2", stats.Sessions)
	}
	if stats.MaxLocked != 10 {
		t.Errorf("MaxLocked = %d, expected 10", stats.MaxLocked)
	}
	if stats.AvgLocked != 7 {
		t.Errorf("AvgLocked = %g, expected 7", stats.AvgLocked)
	}
	if stats.TotalTicks != 350 {
		t.Errorf("TotalTicks = %d, expected 350", stats.TotalTicks)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}
}

func TestClearSessions(t *testing.T) {
	store := openTestStore(t)

	save(t, store, SessionRecord{GameID: "tetris", Locked: 3})
	save(t, store, SessionRecord{GameID: "other", Locked: 3})

	if err := store.ClearSessions("tetris"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	recs, _ := store.RecentSessions("tetris", 10)
	if len(recs) != 0 {
		t.Errorf("expected no tetris sessions, got %d", len(recs))
	}
	other, _ := store.RecentSessions("other", 10)
	if len(other) != 1 {
		t.Errorf("other games should be untouched, got %d", len(other))
	}
}
