package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/zombie-arena/internal/api"
	"github.com/vovakirdan/zombie-arena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagAPIAddr     string
	flagAssetsDir   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the main menu. The SSH user
name is offered as the leaderboard name. All users share the leaderboard.
With --http the leaderboard API runs alongside on the same store.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.zombies/host_key

Examples:
  zombies serve                           # Listen on :23234 with auto-generated key
  zombies serve --ssh :2222               # Listen on port 2222
  zombies serve --http :3000              # Also serve the HTTP API
  zombies serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP leaderboard API",
	Long: `Serve the leaderboard over HTTP.

Routes:
  POST /api/game/scores                  Submit {playerName, score}
  GET  /api/game/scores                  Top 10 records
  GET  /api/game/zombies/settings        Difficulty table
  POST /api/game/ensure-assets-directory Create placeholder sprites
  GET  /api/game/scores/live             Websocket leaderboard updates`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Also serve the HTTP API on this address")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")

	for _, c := range []*cobra.Command{serveCmd, apiCmd} {
		c.Flags().StringVar(&flagAssetsDir, "assets-dir", api.DefaultAssetsDir, "Directory for placeholder sprites")
	}
	apiCmd.Flags().StringVar(&flagAPIAddr, "http", ":3000", "HTTP API address (host:port)")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger(false)
	svc, closeFn := openServices(logger)
	defer closeFn()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.TickRate = flagFPS
	cfg.Preset = presetOrDefault()
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, svc)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if flagHTTPAddr != "" {
		if svc.Board == nil {
			logger.Warn("HTTP API disabled: leaderboard unavailable")
		} else {
			httpServer := api.New(svc.Board, api.WithLogger(logger), api.WithAssetsDir(flagAssetsDir))
			g.Go(func() error {
				return httpServer.ListenAndServe(ctx, flagHTTPAddr)
			})
		}
	}

	fmt.Printf("Starting zombie arena SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return g.Wait()
}

func runAPI(_ *cobra.Command, _ []string) error {
	logger := newLogger(false)
	svc, closeFn := openServices(logger)
	defer closeFn()

	if svc.Board == nil {
		return fmt.Errorf("leaderboard unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.New(svc.Board, api.WithLogger(logger), api.WithAssetsDir(flagAssetsDir))
	return server.ListenAndServe(ctx, flagAPIAddr)
}
