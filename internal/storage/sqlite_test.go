package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("pachinko", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("pachinko", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("pachinko", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("pachinko_classic", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for pachinko
	scores, err := store.TopScores("pachinko", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for classic
	classicScores, err := store.TopScores("pachinko_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(classicScores) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classicScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("pachinko")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("pachinko", 100)
	store.SaveScore("pachinko", 300)
	store.SaveScore("pachinko", 200)

	high, err = store.HighScore("pachinko")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("pachinko", 100)
	store.SaveScore("pachinko", 200)
	store.SaveScore("pachinko_classic", 300)

	// Clear only pachinko scores
	err = store.ClearScores("pachinko")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Pachinko should be empty
	pachinkoScores, _ := store.TopScores("pachinko", 10)
	if len(pachinkoScores) != 0 {
		t.Errorf("Expected 0 pachinko scores after clear, got %d", len(pachinkoScores))
	}

	// Classic should still have scores
	classicScores, _ := store.TopScores("pachinko_classic", 10)
	if len(classicScores) != 1 {
		t.Errorf("Classic scores should not be affected by clearing pachinko")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveSession(t *testing.T) {
	store := openTestStore(t)

	played := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	id, err := store.SaveSession(SessionRecord{
		GameID:   "pachinko",
		Layout:   "chute",
		Score:    120,
		Launched: 30,
		Exits:    12,
		Seed:     42,
		Duration: 95 * time.Second,
		PlayedAt: played,
	})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveSession() id %q is not a UUID: %v", id, err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("SessionByID() returned nil for saved session")
	}
	if got.Layout != "chute" || got.Score != 120 || got.Launched != 30 || got.Exits != 12 || got.Seed != 42 {
		t.Errorf("SessionByID() = %+v", got)
	}
	if got.Duration != 95*time.Second {
		t.Errorf("Duration = %v, want 95s", got.Duration)
	}
	if !got.PlayedAt.Equal(played) {
		t.Errorf("PlayedAt = %v, want %v", got.PlayedAt, played)
	}
}

func TestStoreSessionKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(SessionRecord{ID: "fixed", GameID: "pachinko", Layout: "chute"})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id != "fixed" {
		t.Errorf("SaveSession() id = %q, want fixed", id)
	}

	if _, err := store.SaveSession(SessionRecord{ID: "fixed", GameID: "pachinko", Layout: "chute"}); err == nil {
		t.Error("SaveSession() with duplicate id should fail")
	}
}

func TestStoreSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SessionByID("nope")
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("SessionByID() = %+v, want nil", got)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.SaveSession(SessionRecord{
			GameID:   "pachinko",
			Layout:   "chute",
			Score:    i * 10,
			PlayedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}
	store.SaveSession(SessionRecord{GameID: "pachinko_classic", Layout: "classic", PlayedAt: base})

	recent, err := store.RecentSessions("pachinko", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(recent))
	}
	if recent[0].Score != 40 || recent[1].Score != 30 || recent[2].Score != 20 {
		t.Errorf("Sessions not newest first: %+v", recent)
	}
}

func TestStoreLayoutStats(t *testing.T) {
	store := openTestStore(t)

	sessions := []SessionRecord{
		{GameID: "pachinko", Layout: "chute", Score: 100, Launched: 30, Exits: 10},
		{GameID: "pachinko", Layout: "chute", Score: 200, Launched: 30, Exits: 20},
		{GameID: "pachinko", Layout: "narrow", Score: 50, Launched: 10, Exits: 5},
		{GameID: "pachinko_classic", Layout: "classic", Score: 900, Launched: 90, Exits: 90},
	}
	for _, rec := range sessions {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	stats, err := store.GetLayoutStats("pachinko")
	if err != nil {
		t.Fatalf("GetLayoutStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 layouts, got %d", len(stats))
	}

	chute := stats[0]
	if chute.Layout != "chute" || chute.Sessions != 2 || chute.BestScore != 200 {
		t.Errorf("chute stats = %+v", chute)
	}
	if chute.AvgScore != 150 {
		t.Errorf("chute AvgScore = %v, want 150", chute.AvgScore)
	}
	if chute.ExitRate() != 0.5 {
		t.Errorf("chute ExitRate() = %v, want 0.5", chute.ExitRate())
	}
	if stats[1].Layout != "narrow" {
		t.Errorf("second layout = %q, want narrow", stats[1].Layout)
	}

	if (LayoutStats{}).ExitRate() != 0 {
		t.Error("ExitRate() with no launches should be 0")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("pachinko")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("pachinko", 100)
	store.SaveScore("pachinko", 300)
	store.SaveScore("pachinko_classic", 50)

	stats, err = store.GetGameStats("pachinko")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 games, got %d", len(all))
	}
	if all["pachinko_classic"] == nil || all["pachinko_classic"].HighScore != 50 {
		t.Errorf("classic stats = %+v", all["pachinko_classic"])
	}
}

func TestStoreClearScoresRemovesSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{GameID: "pachinko", Layout: "chute", Score: 10})
	store.SaveSession(SessionRecord{GameID: "pachinko_classic", Layout: "classic", Score: 10})

	if err := store.ClearScores("pachinko"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	recent, _ := store.RecentSessions("pachinko", 10)
	if len(recent) != 0 {
		t.Errorf("Expected no pachinko sessions after clear, got %d", len(recent))
	}
	classic, _ := store.RecentSessions("pachinko_classic", 10)
	if len(classic) != 1 {
		t.Errorf("Classic sessions should not be affected, got %d", len(classic))
	}
}
