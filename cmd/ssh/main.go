package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/toycatch/internal/config"
	"github.com/tomz197/toycatch/internal/draw"
	"github.com/tomz197/toycatch/internal/loop"
	gameconfig "github.com/tomz197/toycatch/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "toycatch"})
	if level, err := log.ParseLevel(config.GetEnv("TOYCATCH_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	settings, err := gameconfig.Resolve()
	if err != nil {
		logger.Fatal("Bad round settings", "err", err)
	}
	logger.Info("Round settings",
		"difficulty", settings.Difficulty,
		"seconds", settings.RoundSeconds,
		"penalty", settings.MissPenalty,
		"hitRadius", fmt.Sprintf("%g×%s", settings.HitRadius.Coefficient, settings.HitRadius.Dimension),
	)

	// Cancelled on shutdown to end every running session.
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	var sessions sync.WaitGroup
	games := &gameHandler{
		settings: settings,
		logger:   logger,
		shutdown: shutdownCtx,
		sessions: &sessions,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// End running rounds and give sessions a moment to restore their terminals.
	shutdown()
	waitTimeout(&sessions, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameHandler runs an independent game for every SSH session.
type gameHandler struct {
	settings gameconfig.Settings
	logger   *log.Logger
	shutdown context.Context
	sessions *sync.WaitGroup
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.sessions.Add(1)
		defer g.sessions.Done()

		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopOnShutdown := context.AfterFunc(g.shutdown, cancel)
		defer stopOnShutdown()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.TerminalOptions{
			Settings:     g.settings,
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("Game error", "err", err)
		}
		if g.shutdown.Err() != nil {
			fmt.Fprintln(sess, "Server is shutting down. Thanks for playing!")
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// waitTimeout waits for wg, giving up after d.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(d):
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
