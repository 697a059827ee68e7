package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if !prefs.SoundEnabled {
			t.Errorf("Expected sound enabled by default")
		}
		if !prefs.ShowHints || prefs.Flipped {
			t.Errorf("Expected hints on and board unflipped, got %+v", prefs)
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.DrawRate() != 0 {
			t.Errorf("Expected 0 draw rate")
		}
	})

	t.Run("DrawRate", func(t *testing.T) {
		stats := &GameStats{GamesPlayed: 8, WhiteWins: 3, BlackWins: 3, Draws: 2}
		if rate := stats.DrawRate(); rate != 25 {
			t.Errorf("Expected 25%% draw rate, got %.2f%%", rate)
		}
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("IsFirstLaunch should be false after MarkFirstLaunchComplete")
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if !prefs.SoundEnabled || prefs.Volume != 0.5 {
		t.Fatalf("Missing key should yield defaults, got %+v", prefs)
	}

	prefs.SoundEnabled = false
	prefs.Flipped = true
	prefs.Volume = 0.8
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if got.SoundEnabled || !got.Flipped || got.Volume != 0.8 {
		t.Errorf("LoadPreferences = %+v", got)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	results := []GameResult{
		{Winner: WinnerBlack, Ending: "checkmate", Plies: 4, Duration: time.Minute},
		{Winner: WinnerWhite, Ending: "checkmate", Plies: 60, Duration: 10 * time.Minute},
		{Winner: WinnerNone, Ending: "stalemate", Plies: 90, Duration: 20 * time.Minute},
		{Winner: WinnerNone, Ending: "threefold repetition", Plies: 12, Duration: 2 * time.Minute},
	}
	for _, r := range results {
		if _, err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame(%+v): %v", r, err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 4 || stats.WhiteWins != 1 || stats.BlackWins != 1 || stats.Draws != 2 {
		t.Errorf("Tallies = %+v", stats)
	}
	if stats.Endings["checkmate"] != 2 || stats.Endings["stalemate"] != 1 {
		t.Errorf("Endings = %v", stats.Endings)
	}
	if stats.LongestGame != 90 || stats.TotalPlies != 166 {
		t.Errorf("LongestGame = %d, TotalPlies = %d", stats.LongestGame, stats.TotalPlies)
	}
	if stats.TotalPlayTime != 33*time.Minute {
		t.Errorf("TotalPlayTime = %v", stats.TotalPlayTime)
	}
	if stats.DrawRate() != 50 {
		t.Errorf("DrawRate = %v", stats.DrawRate())
	}
}

func TestOpenDirPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.RecordGame(GameResult{Winner: WinnerWhite, Ending: "checkmate", Plies: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.WhiteWins != 1 {
		t.Errorf("Stats after reopen = %+v", stats)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME is only honored on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != filepath.Join(base, appName) {
		t.Errorf("GetDataDir = %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		out    game.Outcome
		winner string
		ending string
	}{
		{game.Outcome{Result: game.Checkmate, Winner: board.Black}, WinnerBlack, "checkmate"},
		{game.Outcome{Result: game.Checkmate, Winner: board.White}, WinnerWhite, "checkmate"},
		{game.Outcome{Result: game.Stalemate}, WinnerNone, "stalemate"},
		{game.Outcome{Result: game.Draw, Reason: game.FiftyMoveRule}, WinnerNone, "fifty-move rule"},
	}
	for _, tt := range tests {
		r := ResultOf(tt.out, 10, time.Second)
		if r.Winner != tt.winner || r.Ending != tt.ending || r.Plies != 10 || r.Duration != time.Second {
			t.Errorf("ResultOf(%v) = %+v", tt.out, r)
		}
	}
}
