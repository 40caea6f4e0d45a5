package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
	"github.com/vovakirdan/zombie-arena/internal/platform/tui"
	"github.com/vovakirdan/zombie-arena/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeFile   = "file"
)

// applyGameFlags validates the shared flags and hands them to the game package.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagStore != storeSQLite && flagStore != storeFile {
		return fmt.Errorf("unknown store %q (want %s or %s)", flagStore, storeSQLite, storeFile)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	zombies.SetConfigPath(flagConfig)
	zombies.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so they log to a file instead of stderr.
func newLogger(interactive bool) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if path, pathErr := storage.ExpandHome("~/.zombies/zombies.log"); pathErr == nil {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
				if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); openErr == nil {
					w = f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "zombies",
	})
	if err != nil {
		logger.Warn("invalid log level, using info", "level", flagLogLevel)
	}
	zombies.SetLogger(logger)
	return logger
}

// openServices opens the configured leaderboard backend. Storage failures
// are logged and leave the leaderboard unavailable rather than aborting.
func openServices(logger *log.Logger) (tui.Services, func()) {
	svc := tui.Services{Log: logger}
	closeFn := func() {}

	cfg, err := config.LoadZombies(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	opts := []leaderboard.Option{
		leaderboard.WithSettings(cfg.Difficulty),
		leaderboard.WithLogger(logger),
	}

	switch flagStore {
	case storeFile:
		fs, err := storage.NewFileStore(flagScoresFile)
		if err != nil {
			logger.Warn("leaderboard unavailable", "err", err)
			return svc, closeFn
		}
		svc.Board = leaderboard.New(fs, opts...)
		logger.Debug("using file leaderboard", "path", fs.Path())
	default:
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "err", err)
			return svc, closeFn
		}
		svc.Board = leaderboard.New(store, opts...)
		svc.Runs = store
		closeFn = func() { store.Close() }
		logger.Debug("using sqlite leaderboard", "path", flagDBPath)
	}
	return svc, closeFn
}
