package ssh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mazepath_ssh_sessions_active",
		Help: "SSH sessions currently connected.",
	})
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mazepath_ssh_sessions_total",
		Help: "SSH sessions accepted, by how they ended.",
	}, []string{"result"})
)

// Handler drives one session's screen until the client leaves. ctx is
// cancelled when the connection closes.
type Handler func(ctx context.Context, screen tcell.Screen, logger *slog.Logger) error

// Server gives every SSH client with a PTY its own screen and tracks the
// connected sessions.
type Server struct {
	srv     *gossh.Server
	handler Handler
	logger  *slog.Logger

	mu      sync.Mutex
	nextID  int
	started map[int]time.Time
}

// NewServer creates a server listening on addr. Any client may connect.
func NewServer(addr string, signer gossh.Signer, h Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		handler: h,
		logger:  logger,
		started: make(map[int]time.Time),
	}
	s.srv = &gossh.Server{
		Addr:        addr,
		Handler:     s.handle,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("ssh server listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("ssh server listening", "addr", l.Addr().String())
	return s.srv.Serve(l)
}

// Shutdown stops accepting connections and waits for open ones to close
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	if errors.Is(err, gossh.ErrServerClosed) {
		return nil
	}
	return err
}

// Close closes the listener and all connections immediately.
func (s *Server) Close() error { return s.srv.Close() }

// Active returns the number of sessions currently being handled.
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.started)
}

func (s *Server) add() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.started[id] = time.Now()
	sessionsActive.Inc()
	return id
}

func (s *Server) remove(id int) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := time.Since(s.started[id])
	delete(s.started, id)
	sessionsActive.Dec()
	return d
}

// handle is the gliderlabs handler for one connection. It blocks for the
// lifetime of the session so the channel stays open.
func (s *Server) handle(sess gossh.Session) {
	id := s.add()
	logger := s.logger.With("conn", id, "remote", sess.RemoteAddr().String(), "user", sess.User())
	result := "ok"
	defer func() {
		d := s.remove(id)
		sessionsTotal.WithLabelValues(result).Inc()
		logger.Info("ssh session closed", "result", result, "duration", d.Round(time.Millisecond))
	}()

	screen, err := NewScreen(sess)
	if errors.Is(err, ErrNoPty) {
		result = "no_pty"
		fmt.Fprintln(sess, "mazepath needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		result = "error"
		logger.Error("failed to open screen", "error", err)
		fmt.Fprintf(sess, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	logger.Info("ssh session opened")
	if err := s.handler(sess.Context(), screen, logger); err != nil {
		result = "error"
		logger.Warn("session ended with error", "error", err)
	}
}
