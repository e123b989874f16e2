package mdlive

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdlive/internal/config"
	"github.com/alnah/go-mdlive/internal/live"
	"github.com/alnah/go-mdlive/internal/logging"
	"github.com/alnah/go-mdlive/internal/watch"
)

// Server defaults, shared with the config file defaults.
const (
	DefaultHost = config.DefaultHost
	DefaultPort = config.DefaultPort

	shutdownGrace     = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// ServerConfig describes one watch session.
type ServerConfig struct {
	Path   string     // Markdown file to serve and watch; required
	Host   string     // bind address, DefaultHost when empty
	Port   int        // 0 lets the OS pick a free port
	Reload ReloadMode // ReloadSSE when empty
	Open   bool       // open the browser once listening
}

// Server serves a live preview of one Markdown file and pushes a reload to
// connected pages whenever the file changes.
type Server struct {
	renderer  *Renderer
	cfg       ServerConfig
	path      string
	name      string
	logger    Logger
	opener    Opener
	keepAlive time.Duration

	hub     *live.Hub
	handler http.Handler
	httpSrv *http.Server
	ln      net.Listener
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger for connection and file events.
func WithServerLogger(l Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOpener sets the browser opener used when ServerConfig.Open is true.
func WithOpener(o Opener) ServerOption {
	return func(s *Server) {
		s.opener = o
	}
}

// WithKeepAlive sets the interval between SSE keepalive comments.
func WithKeepAlive(d time.Duration) ServerOption {
	return func(s *Server) {
		s.keepAlive = d
	}
}

// NewServer creates a Server for cfg.Path. The file must be named, since
// stdin cannot be watched; Listen checks that it exists.
func NewServer(r *Renderer, cfg ServerConfig, opts ...ServerOption) (*Server, error) {
	if cfg.Path == "" {
		return nil, ErrStdinInServerMode
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Reload == ReloadNone {
		cfg.Reload = ReloadSSE
	}

	s := &Server{
		renderer:  r,
		cfg:       cfg,
		path:      abs,
		name:      filepath.Base(abs),
		logger:    logging.NoOp(),
		keepAlive: live.DefaultKeepAlive,
		hub:       live.NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = s.routes()
	s.httpSrv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.Handle("GET /events", live.NewSSEHandler(s.hub, logging.For(s.logger, "sse"), s.keepAlive))
	mux.Handle("GET /ws", live.NewWebSocketHandler(s.hub, logging.For(s.logger, "websocket")))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /", http.FileServer(http.Dir(filepath.Dir(s.path))))
	return mux
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen checks the source file and binds the configured address. A
// missing file is reported as ErrReadSource and a busy port as
// ErrPortInUse; nothing is retried.
func (s *Server) Listen() error {
	if err := s.checkSource(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if isAddrInUse(err) {
			return fmt.Errorf("%w: %s", ErrPortInUse, addr)
		}
		return fmt.Errorf("%w: %s: %v", ErrListen, addr, err)
	}
	s.ln = ln
	return nil
}

func (s *Server) checkSource() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrReadSource, s.path)
	}
	return nil
}

func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows reports WSAEADDRINUSE, which syscall does not map.
	return strings.Contains(err.Error(), "address already in use") ||
		strings.Contains(err.Error(), "Only one usage of each socket address")
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// URL returns the address to open in a browser. Wildcard binds are shown
// as localhost.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Serve runs the HTTP server and the file watcher until ctx is done or one
// of them fails. Listen must have been called. On return the listener, the
// watcher and all reload streams are closed.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return fmt.Errorf("%w: Serve called before Listen", ErrListen)
	}

	w, err := watch.New(s.path)
	if err != nil {
		_ = s.ln.Close()
		return err
	}
	defer func() { _ = w.Close() }()

	s.logger.Info("serving preview", "url", s.URL(), "file", s.path, "reload", string(s.cfg.Reload))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpSrv.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %v", ErrListen, err)
		}
		return nil
	})

	g.Go(func() error {
		return w.Run(gctx, func() {
			s.logger.Info("file changed", "file", s.name, "clients", s.hub.Len())
			s.hub.Publish()
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		_ = w.Close()
		return nil
	})

	if s.cfg.Open {
		s.openBrowser()
	}

	return g.Wait()
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// shutdown ends reload streams first so Shutdown does not wait on them.
func (s *Server) shutdown() {
	s.hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Warn("server shutdown", "error", err)
	}
	s.logger.Debug("server stopped")
}

func (s *Server) openBrowser() {
	if s.opener == nil {
		s.logger.Warn("no browser opener configured", "url", s.URL())
		return
	}
	if err := s.opener.Open(s.URL()); err != nil {
		s.logger.Warn("could not open browser", "url", s.URL(), "error", err)
	}
}

// handlePage reads the file on every request so a page load always shows
// the current contents.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("cannot read source", "file", s.path, "error", err)
		http.Error(w, fmt.Sprintf("cannot read %s: %v", s.name, err), http.StatusInternalServerError)
		return
	}

	res, err := s.renderer.Render(r.Context(), Input{
		Name:     s.name,
		Markdown: data,
		Reload:   s.cfg.Reload,
	})
	if err != nil {
		s.logger.Warn("render failed", "file", s.path, "error", err)
		http.Error(w, fmt.Sprintf("cannot render %s: %v", s.name, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(res.HTML)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
