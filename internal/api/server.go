// Package api exposes the leaderboard and difficulty table over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/assets"
	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
)

const (
	// DefaultAssetsDir is where ensure-assets-directory writes sprites.
	DefaultAssetsDir = "./public/assets"

	maxBodyBytes    = 1 << 16
	shutdownTimeout = 5 * time.Second
)

// Server serves the game API.
type Server struct {
	board     *leaderboard.Board
	hub       *Hub
	assetsDir string
	log       *log.Logger
	mux       *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithAssetsDir sets the sprite directory.
func WithAssetsDir(dir string) Option {
	return func(s *Server) { s.assetsDir = dir }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New creates a Server over board.
func New(board *leaderboard.Board, opts ...Option) *Server {
	s := &Server{
		board:     board,
		assetsDir: DefaultAssetsDir,
		mux:       http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.Default()
	}
	s.hub = NewHub(s.log)

	s.mux.HandleFunc("POST /api/game/scores", s.handleSubmit)
	s.mux.HandleFunc("GET /api/game/scores", s.handleScores)
	s.mux.HandleFunc("GET /api/game/zombies/settings", s.handleSettings)
	s.mux.HandleFunc("POST /api/game/ensure-assets-directory", s.handleEnsureAssets)
	s.mux.HandleFunc("GET /api/game/scores/live", s.handleLive)
	return s
}

// Hub returns the live leaderboard fan-out.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		s.log.Debug("http request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Stopping HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

type submitRequest struct {
	PlayerName string `json:"playerName"`
	Score      *int   `json:"score"`
}

type submitResponse struct {
	Success bool `json:"success"`
	leaderboard.Result
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, failure{Message: "invalid request body: " + err.Error()})
		return
	}
	if req.Score == nil {
		s.writeJSON(w, http.StatusBadRequest, failure{Message: "score is required"})
		return
	}

	res, err := s.board.Submit(r.Context(), req.PlayerName, *req.Score)
	switch {
	case errors.Is(err, leaderboard.ErrInvalidScore):
		s.writeJSON(w, http.StatusBadRequest, failure{Message: err.Error()})
		return
	case err != nil:
		s.log.Error("score submission failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, failure{Message: err.Error()})
		return
	}

	if res.Accepted {
		if top, err := s.board.Top(r.Context()); err == nil {
			s.hub.Broadcast(top)
		} else {
			s.log.Warn("cannot refresh live leaderboard", "err", err)
		}
	}
	s.writeJSON(w, http.StatusCreated, submitResponse{Success: true, Result: res})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	top, err := s.board.Top(r.Context())
	if err != nil {
		s.log.Error("cannot load leaderboard", "err", err)
		top = []leaderboard.Record{}
	}
	s.writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.board.Settings())
}

func (s *Server) handleEnsureAssets(w http.ResponseWriter, _ *http.Request) {
	res := assets.Ensure(s.assetsDir)
	if !res.Success {
		s.log.Error("cannot prepare assets", "dir", s.assetsDir, "err", res.Message)
	}
	s.writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	top, err := s.board.Top(r.Context())
	if err != nil {
		s.log.Warn("cannot load leaderboard for live client", "err", err)
		top = []leaderboard.Record{}
	}
	s.hub.ServeClient(w, r, top)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("cannot write response", "err", err)
	}
}
