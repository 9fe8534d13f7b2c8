// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"refbook/internal/render"
	"refbook/pkg/catalog"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

type (
	// Server serves the reference catalog over SSH.
	// A Server instance is single-use: once stopped or failed, create a new instance.
	Server struct {
		// Immutable collaborators (set at creation, never modified)
		cfg      Config
		cat      *catalog.Catalog
		renderer *render.Renderer

		// State management (atomic for lock-free reads)
		state atomic.Int32

		// Initialized during Start() - protected by srvMu for writes
		srvMu    sync.Mutex
		srv      *ssh.Server
		addr     string // Actual bound address (including resolved port)
		startErr error

		// Lifecycle management
		wg        sync.WaitGroup
		startedCh chan struct{} // Closed when server is ready to accept connections
		errCh     chan error    // Receives fatal errors from the serve goroutine
	}

	// Config holds immutable configuration for the SSH server.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1)
		Host string
		// Port is the port to listen on (0 = auto-select)
		Port int
		// HostKeyPath is the server host key file. When empty an ephemeral
		// key is generated for the lifetime of the process.
		HostKeyPath string
		// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
		ShutdownTimeout time.Duration
		// StartupTimeout is the max time to wait for server to be ready (default: 5s)
		StartupTimeout time.Duration
	}
)

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            0,
		ShutdownTimeout: 10 * time.Second,
		StartupTimeout:  5 * time.Second,
	}
}

// New creates a new catalog SSH server.
// The server is not started; call Start() to begin accepting connections.
func New(cfg Config, cat *catalog.Catalog, renderer *render.Renderer) *Server {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.StartupTimeout == 0 {
		cfg.StartupTimeout = 5 * time.Second
	}

	s := &Server{
		cfg:       cfg,
		cat:       cat,
		renderer:  renderer,
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1), // Buffered so the serve goroutine doesn't block
	}
	s.state.Store(int32(StateCreated))

	return s
}

// logger is the package logger for connection tracing.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "refbook-serve",
})

// topicMiddleware serves a session: no command prints the topic index, a
// command names the topic to print. Sessions are read-only and stateless.
func (s *Server) topicMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			start := time.Now()
			id := strings.TrimSpace(strings.Join(sess.Command(), " "))

			out, err := s.respond(id)
			if err != nil {
				fmt.Fprintln(sess.Stderr(), err.Error())
				logger.Warn("session failed",
					"user", sess.User(),
					"remote", sess.RemoteAddr().String(),
					"topic", id,
					"error", err)
				_ = sess.Exit(1)
				return
			}

			wish.Print(sess, out)
			logger.Info("session served",
				"user", sess.User(),
				"remote", sess.RemoteAddr().String(),
				"topic", id,
				"duration", time.Since(start))
			next(sess)
		}
	}
}

// respond produces the output for one session request.
func (s *Server) respond(id string) (string, error) {
	if id == "" || id == "index" {
		return s.renderIndex()
	}

	topic, err := s.cat.Get(id)
	if err != nil {
		return "", err
	}
	return s.renderer.Topic(topic)
}

// renderIndex renders the topic listing shown to sessions without a command.
func (s *Server) renderIndex() (string, error) {
	topics := s.cat.Topics()
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Level != topics[j].Level {
			return topics[i].Level < topics[j].Level
		}
		return topics[i].Title < topics[j].Title
	})

	var b strings.Builder
	b.WriteString("# Topics\n\n")
	b.WriteString("Run 'ssh <host> <topic>' to print a topic.\n\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "- `%s` %s\n", t.Anchor, t.Title)
	}
	return s.renderer.Markdown(b.String())
}
