// Package leaderboard keeps the top-ten high score table on top of a
// pluggable storage backend.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/zombie-arena/internal/config"
)

//go:generate go tool mockgen -destination=./mocks/backend_mock.go -package=mocks . Backend

const (
	// Capacity is the number of records kept.
	Capacity = 10
	// MaxNameLen is the longest accepted player name, in runes.
	MaxNameLen = 24
	// DefaultName replaces blank player names.
	DefaultName = "Anonymous"
)

// ErrInvalidScore is returned for negative scores.
var ErrInvalidScore = errors.New("leaderboard: invalid score")

// Record is one persisted leaderboard entry.
type Record struct {
	ID         string    `json:"id" yaml:"id"`
	PlayerName string    `json:"playerName" yaml:"playerName"`
	Score      int       `json:"score" yaml:"score"`
	Date       time.Time `json:"date" yaml:"date"`
}

// Result describes a submission.
// Rank is 1-based within the kept records, or 0 when Accepted is false.
type Result struct {
	Record   Record `json:"score"`
	Rank     int    `json:"rank"`
	Accepted bool   `json:"accepted"`
}

// Backend stores the ordered record list.
type Backend interface {
	// Load returns the stored records, best first.
	Load(ctx context.Context) ([]Record, error)
	// Replace overwrites the stored records with recs.
	Replace(ctx context.Context, recs []Record) error
}

// Board serializes submissions against a Backend.
type Board struct {
	mu       sync.Mutex
	backend  Backend
	settings config.DifficultySettings
	now      func() time.Time
	newID    func() string
	log      *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithIDs overrides the record ID source.
func WithIDs(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

// WithSettings sets the difficulty table returned by Settings.
func WithSettings(s config.DifficultySettings) Option {
	return func(b *Board) { b.settings = s.Clone() }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.log = l }
}

// New creates a Board over backend.
func New(backend Backend, opts ...Option) *Board {
	b := &Board{
		backend:  backend,
		settings: config.DefaultDifficultySettings(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = log.Default()
	}
	return b
}

// Submit records a finished run. The record is inserted after any existing
// record with the same score, the list is cut to Capacity and persisted.
func (b *Board) Submit(ctx context.Context, name string, score int) (Result, error) {
	if score < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.backend.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("leaderboard: load: %w", err)
	}

	rec := Record{
		ID:         b.newID(),
		PlayerName: NormalizeName(name),
		Score:      score,
		Date:       b.now().UTC(),
	}
	kept := Insert(records, rec)

	if err := b.backend.Replace(ctx, kept); err != nil {
		return Result{}, fmt.Errorf("leaderboard: save: %w", err)
	}

	res := Result{Record: rec, Rank: RankOf(kept, rec.ID)}
	res.Accepted = res.Rank > 0
	b.log.Info("score submitted", "player", rec.PlayerName, "score", score, "rank", res.Rank)
	return res, nil
}

// Top returns up to Capacity records, best first.
func (b *Board) Top(ctx context.Context) ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}
	return Sorted(records), nil
}

// Clear removes every record.
func (b *Board) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.backend.Replace(ctx, nil); err != nil {
		return fmt.Errorf("leaderboard: clear: %w", err)
	}
	b.log.Info("leaderboard cleared")
	return nil
}

// Settings returns a copy of the static difficulty table.
func (b *Board) Settings() config.DifficultySettings {
	return b.settings.Clone()
}

// Insert appends rec to records and returns the best Capacity entries.
// Equal scores keep their arrival order. records is not modified.
func Insert(records []Record, rec Record) []Record {
	all := make([]Record, 0, len(records)+1)
	all = append(all, records...)
	all = append(all, rec)
	return Sorted(all)
}

// Sorted returns a copy of records ordered by score, best first, cut to Capacity.
func Sorted(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.Score - a.Score
	})
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	if out == nil {
		out = []Record{}
	}
	return out
}

// RankOf returns the 1-based position of the record with id, or 0.
func RankOf(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i + 1
		}
	}
	return 0
}

// NormalizeName trims whitespace, substitutes DefaultName for blank names
// and caps the length at MaxNameLen runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	return name
}
