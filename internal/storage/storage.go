package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/obslog"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// UserPreferences stores settings the player changes from the UI.
type UserPreferences struct {
	SoundEnabled bool      `json:"sound_enabled"`
	Volume       float64   `json:"volume"`
	Flipped      bool      `json:"flipped"`
	ShowHints    bool      `json:"show_hints"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		SoundEnabled: true,
		Volume:       0.5,
		ShowHints:    true,
		LastPlayed:   time.Now(),
	}
}

// Winner values of a GameResult.
const (
	WinnerWhite = "white"
	WinnerBlack = "black"
	WinnerNone  = ""
)

// GameStats stores totals over finished games.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	Endings       map[string]int `json:"endings"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{Endings: make(map[string]int)}
}

// GameResult describes a finished game.
type GameResult struct {
	Winner   string // WinnerWhite, WinnerBlack or WinnerNone for a draw
	Ending   string // "checkmate", "stalemate", "fifty-move rule", ...
	Plies    int
	Duration time.Duration
}

// ResultOf converts a finished game's outcome into a GameResult.
func ResultOf(out game.Outcome, plies int, d time.Duration) GameResult {
	r := GameResult{Winner: WinnerNone, Plies: plies, Duration: d}
	switch out.Result {
	case game.Checkmate:
		r.Ending = "checkmate"
		r.Winner = WinnerWhite
		if out.Winner == board.Black {
			r.Winner = WinnerBlack
		}
	case game.Stalemate:
		r.Ending = "stalemate"
	case game.Draw:
		r.Ending = out.Reason.String()
	}
	return r
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log *zap.Logger
}

// Open opens the database in dir, or in the platform data directory when dir is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	log := obslog.L().Named("storage")
	opts.Logger = badgerLogger{log.Sugar()}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Debug("database opened", zap.String("dir", opts.Dir), zap.Bool("in_memory", opts.InMemory))
	return &Storage{db: db, log: log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	return prefs, s.get(keyPreferences, prefs)
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.Endings == nil {
		stats.Endings = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) (*GameStats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	stats.TotalPlies += result.Plies
	stats.LongestGame = max(stats.LongestGame, result.Plies)
	if result.Ending != "" {
		stats.Endings[result.Ending]++
	}

	switch result.Winner {
	case WinnerWhite:
		stats.WhiteWins++
	case WinnerBlack:
		stats.BlackWins++
	default:
		stats.Draws++
	}

	s.log.Info("game recorded",
		zap.String("winner", result.Winner),
		zap.String("ending", result.Ending),
		zap.Int("plies", result.Plies),
		zap.Int("games_played", stats.GamesPlayed))
	return stats, s.SaveStats(stats)
}

// DrawRate returns the share of drawn games as a percentage (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, leaving v untouched when the key is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// badgerLogger routes badger's logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}

// Badger reports routine compaction progress at info level.
func (l badgerLogger) Infof(format string, args ...any) {
	l.Debugf(format, args...)
}
