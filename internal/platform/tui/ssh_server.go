package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/mitchellh/go-homedir"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// GameConfigSource supplies the game configuration for new connections.
// *config.Watcher satisfies it.
type GameConfigSource interface {
	Current() config.SnakeConfig
}

// staticConfig is a GameConfigSource that never changes.
type staticConfig config.SnakeConfig

func (c staticConfig) Current() config.SnakeConfig { return config.SnakeConfig(c) }

// StaticConfig wraps a fixed configuration.
func StaticConfig(cfg config.SnakeConfig) GameConfigSource { return staticConfig(cfg) }

// SSHServer serves one independent game per SSH connection. Connections
// share the in-memory leaderboard and read the game configuration from
// games when they open, so config reloads reach new players only.
type SSHServer struct {
	config SSHServerConfig
	games  GameConfigSource
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64

	closeOnce sync.Once
}

// NewSSHServer creates a server. A leaderboard that cannot be opened is
// logged and the server runs without one.
func NewSSHServer(cfg SSHServerConfig, games GameConfigSource, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		games:  games,
		logger: logger,
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackConnections,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	if srv.store, err = storage.Open(); err != nil {
		logger.Warn("could not open leaderboard", "error", err)
		srv.store = nil
	}
	return srv, nil
}

// resolveHostKey expands path, defaulting to ~/.snake/host_key, and makes
// sure its directory exists. Wish generates the key on first use.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = filepath.Join("~", ".snake", "host_key")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("tui: cannot resolve host key path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler builds the model for one connection. Sessions without a PTY
// are refused.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "snake needs an interactive terminal, try: ssh -t")
		return nil, nil
	}

	player := sshSession.User()
	logger := s.logger.With("user", player)

	game := snake.New(s.games.Current())
	game.Subscribe(EventLogger(logger))

	rc := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    time.Now().UnixNano(),
	}
	return NewModel(game, s.store, rc, player, logger), []tea.ProgramOption{tea.WithAltScreen()}
}

// trackConnections logs each connection with its duration and keeps the
// count of open ones.
func (s *SSHServer) trackConnections(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		remote := sshSession.RemoteAddr().String()
		logger := s.logger.With("user", sshSession.User(), "remote", remote)

		logger.Info("connection opened", "active", s.active.Add(1))
		defer func() {
			logger.Info("connection closed",
				"active", s.active.Add(-1),
				"duration", time.Since(start).Round(time.Second),
			)
		}()
		next(sshSession)
	}
}

// Active returns the number of open connections.
func (s *SSHServer) Active() int64 {
	return s.active.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.Active())
		return s.Shutdown()
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: SSH server: %w", err)
	}
}

// Shutdown waits up to ten seconds for connections to finish and closes
// the leaderboard.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	s.closeOnce.Do(func() {
		if s.store != nil {
			s.store.Close()
		}
	})
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
