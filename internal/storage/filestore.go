package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
)

// FileStore keeps the leaderboard as a YAML sequence in a single file.
// A missing file reads as an empty leaderboard.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ leaderboard.Backend = (*FileStore)(nil)

type fileRecord struct {
	ID         string    `yaml:"id,omitempty"`
	PlayerName string    `yaml:"playerName"`
	Score      int       `yaml:"score"`
	Date       time.Time `yaml:"date"`
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the resolved document path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the document.
func (f *FileStore) Load(ctx context.Context) ([]leaderboard.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var entries []fileRecord
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("storage: cannot parse %s: %w", f.path, err)
	}
	records := make([]leaderboard.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, leaderboard.Record{
			ID:         e.ID,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Date:       e.Date,
		})
	}
	return records, nil
}

// Replace writes the whole document through a temp file and rename so
// readers never observe a partial write.
func (f *FileStore) Replace(ctx context.Context, recs []leaderboard.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]fileRecord, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, fileRecord{
			ID:         r.ID,
			PlayerName: r.PlayerName,
			Score:      r.Score,
			Date:       r.Date.UTC(),
		})
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("storage: cannot encode leaderboard: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scores-*.yaml")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}
