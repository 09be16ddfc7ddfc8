package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vk/dinersim/internal/ctxlog"
	"github.com/vk/dinersim/internal/dining"
)

// Snapshotter is the slice of the core the server is allowed to see.
// *dining.Table satisfies it.
type Snapshotter interface {
	Snapshot() dining.TableSnapshot
}

// defaultPushInterval is the cadence of frames on the live feed.
const defaultPushInterval = 250 * time.Millisecond

// Server publishes table snapshots over HTTP. Build it with NewServer,
// start it with Start and stop it with Shutdown; it owns no goroutines
// outside that window.
type Server struct {
	port     int
	source   Snapshotter
	interval time.Duration
	logger   *slog.Logger
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener
	quit       chan struct{}
	closeOnce  sync.Once
}

// NewServer wires a server for the given port. Nothing listens until Start.
func NewServer(port int, source Snapshotter) *Server {
	return &Server{
		port:     port,
		source:   source,
		interval: defaultPushInterval,
		logger:   slog.Default(),
		upgrader: websocket.Upgrader{
			// The feed is read-only observation data; any origin may watch.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		quit: make(chan struct{}),
	}
}

// Start binds the listener and begins serving in the background. A failure
// to bind is returned synchronously; anything after that only shows up in
// the logs.
func (s *Server) Start(ctx context.Context) error {
	s.logger = ctxlog.FromContext(ctx)
	s.logger.Debug("Configuring monitor server.")

	addr := fmt.Sprintf(":%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("monitor server cannot listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{Handler: s.Handler()}

	go func() {
		s.logger.Info("🩺 Monitor server starting.", "address", fmt.Sprintf("http://localhost:%d/snapshot", s.Port()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Monitor server failed unexpectedly.", "error", err)
		}
	}()
	return nil
}

// Port returns the port the server actually listens on, which differs from
// the requested one when the server was started on port 0.
func (s *Server) Port() int {
	if s.listener == nil {
		return s.port
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Shutdown stops accepting connections, ends every live feed and waits
// briefly for in-flight requests to finish. It is safe to call more than
// once and before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.quit) })

	if s.httpServer == nil {
		s.logger.Debug("Monitor server was not running.")
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("🩺 Shutting down monitor server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Monitor server shutdown failed.", "error", err)
		return err
	}

	s.logger.Debug("Monitor server shut down gracefully.")
	return nil
}

// Handler returns the server's routes. Exposed so tests can drive the
// endpoints without a real listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/live", s.handleLive)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Snapshot endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.source.Snapshot()); err != nil {
		s.logger.Error("Failed to encode snapshot.", "error", err)
	}
}

// handleLive upgrades the connection and pushes a snapshot frame on every
// tick until the client leaves, the request ends or the server shuts down.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	s.logger.Debug("Live feed client connected.", "remote_addr", r.RemoteAddr)

	// The feed never expects client messages; the read pump exists to
	// notice the peer going away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First frame straight away so a client sees state without waiting a tick.
	if err := conn.WriteJSON(s.source.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-clientGone:
			s.logger.Debug("Live feed client left.", "remote_addr", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(s.source.Snapshot()); err != nil {
				return
			}
		}
	}
}
