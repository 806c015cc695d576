package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// Side names the side drawn on the upper edge of the board.
type Side int

const (
	SideBlack Side = iota // Black on top, White plays up the screen
	SideWhite
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string    `json:"username"`
	TopSide      Side      `json:"top_side"`
	SoundEnabled bool      `json:"sound_enabled"`
	ShowMoveDots bool      `json:"show_move_dots"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		TopSide:      SideBlack,
		SoundEnabled: true,
		ShowMoveDots: true,
		LastPlayed:   time.Now(),
	}
}

// PlayStats counts what happened across every game played on this machine.
type PlayStats struct {
	GamesStarted  int            `json:"games_started"`
	MovesPlayed   int            `json:"moves_played"`
	Captures      int            `json:"captures"`
	Castles       int            `json:"castles"`
	Promotions    int            `json:"promotions"`
	EnPassant     int            `json:"en_passant"`
	MovesBySide   map[string]int `json:"moves_by_side"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewPlayStats returns empty statistics
func NewPlayStats() *PlayStats {
	return &PlayStats{
		MovesBySide: make(map[string]int),
	}
}

// MoveRecord is the part of a played move that statistics care about.
type MoveRecord struct {
	Side      string // "white" or "black"
	Capture   bool
	Castle    bool
	Promotion bool
	EnPassant bool
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, fmt.Errorf("resolve database dir: %w", err)
	}
	return OpenAt(dbDir)
}

// OpenAt opens (or creates) the database in dir.
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
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
		if err == badger.ErrKeyNotFound {
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
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves play statistics
func (s *Storage) SaveStats(stats *PlayStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads play statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*PlayStats, error) {
	stats := NewPlayStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.MovesBySide == nil {
		stats.MovesBySide = make(map[string]int)
	}
	return stats, nil
}

// RecordGameStarted counts a new game and adds the length of the previous one.
func (s *Storage) RecordGameStarted(previous time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.GamesStarted++
	stats.TotalPlayTime += previous
	return s.SaveStats(stats)
}

// RecordMove adds one played move to the statistics.
func (s *Storage) RecordMove(m MoveRecord) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.MovesPlayed++
	stats.MovesBySide[m.Side]++
	if m.Capture {
		stats.Captures++
	}
	if m.Castle {
		stats.Castles++
	}
	if m.Promotion {
		stats.Promotions++
	}
	if m.EnPassant {
		stats.EnPassant++
	}

	return s.SaveStats(stats)
}

// CaptureRate returns the share of moves that captured, as a percentage (0-100)
func (s *PlayStats) CaptureRate() float64 {
	if s.MovesPlayed == 0 {
		return 0
	}
	return float64(s.Captures) / float64(s.MovesPlayed) * 100
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, leaving v untouched if the key is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, v); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			return nil
		})
	})
}
