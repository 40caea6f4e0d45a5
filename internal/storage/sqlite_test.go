package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreLeaderboardEmpty(t *testing.T) {
	store := openTestStore(t)

	recs, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty leaderboard, got %d records", len(recs))
	}
}

func TestStoreLeaderboardReplace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	first := []leaderboard.Record{
		{ID: "a", PlayerName: "Ann", Score: 300, Date: date},
		{ID: "b", PlayerName: "Bob", Score: 200, Date: date.Add(time.Minute)},
		{ID: "c", PlayerName: "Cid", Score: 200, Date: date.Add(2 * time.Minute)},
	}
	if err := store.Replace(ctx, first); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != len(first) {
		t.Fatalf("expected %d records, got %d", len(first), len(got))
	}
	for i := range first {
		if got[i].ID != first[i].ID || got[i].PlayerName != first[i].PlayerName || got[i].Score != first[i].Score {
			t.Errorf("record %d = %+v, want %+v", i, got[i], first[i])
		}
		if !got[i].Date.Equal(first[i].Date) {
			t.Errorf("record %d date = %v, want %v", i, got[i].Date, first[i].Date)
		}
	}

	// A second replace drops the previous rows.
	if err := store.Replace(ctx, first[:1]); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	got, _ = store.Load(ctx)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected only record a after replace, got %+v", got)
	}
}

func TestStoreBacksBoard(t *testing.T) {
	store := openTestStore(t)
	board := leaderboard.New(store)
	ctx := context.Background()

	for _, score := range []int{10, 50, 30} {
		if _, err := board.Submit(ctx, "p", score); err != nil {
			t.Fatalf("Submit(%d) failed: %v", score, err)
		}
	}
	top, err := board.Top(ctx)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 50 || top[2].Score != 10 {
		t.Errorf("unexpected leaderboard: %+v", top)
	}
}

func TestStoreRunsTopAndHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx, "zombies")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	for i := 0; i < 5; i++ {
		id, err := store.RecordRun(ctx, Run{GameID: "zombies", PlayerName: "p", Score: (i + 1) * 100})
		if err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
		if id == "" {
			t.Error("RecordRun() returned empty id")
		}
	}
	store.RecordRun(ctx, Run{GameID: "other", Score: 9000})

	runs, err := store.TopRuns(ctx, "zombies", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	high, _ = store.HighScore(ctx, "zombies")
	if high != 500 {
		t.Errorf("Expected high score of 500, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.RecordRun(ctx, Run{GameID: "zombies", Score: 100})
	store.RecordRun(ctx, Run{GameID: "other", Score: 300})

	if err := store.ClearRuns(ctx, "zombies"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.TopRuns(ctx, "zombies", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	other, _ := store.TopRuns(ctx, "other", 10)
	if len(other) != 1 {
		t.Errorf("other game runs should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.GetGameStats(ctx, "zombies")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.Accuracy() != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", stats)
	}

	last := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	store.RecordRun(ctx, Run{GameID: "zombies", Score: 100, Kills: 10, ShotsFired: 20, Hits: 10, SurvivedMs: 30000, CreatedAt: last.Add(-time.Hour)})
	store.RecordRun(ctx, Run{GameID: "zombies", Score: 300, Kills: 30, ShotsFired: 20, Hits: 15, SurvivedMs: 60000, CreatedAt: last})

	stats, err = store.GetGameStats(ctx, "zombies")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, want 2", stats.RunsCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalKills != 40 {
		t.Errorf("TotalKills = %d, want 40", stats.TotalKills)
	}
	if stats.Accuracy() != 25.0/40.0 {
		t.Errorf("Accuracy = %v, want %v", stats.Accuracy(), 25.0/40.0)
	}
	if stats.LongestRun != time.Minute {
		t.Errorf("LongestRun = %v, want 1m", stats.LongestRun)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, last)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cases := []any{
		want,
		"2024-01-02T03:04:05Z",
		"2024-01-02 03:04:05",
		[]byte("2024-01-02T03:04:05Z"),
	}
	for _, c := range cases {
		if got := parseTime(c); !got.Equal(want) {
			t.Errorf("parseTime(%v) = %v, want %v", c, got, want)
		}
	}
	if got := parseTime(42); !got.IsZero() {
		t.Errorf("parseTime(42) = %v, want zero", got)
	}
}
