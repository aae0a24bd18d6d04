package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/pkg/editor"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/renderers/vanilla"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server settings.
type Config struct {
	Listen string
	Title  string
	Theme  *theme.RendererConfig
	// AllowedOrigins lists extra Origin values accepted on /ws. Same-host
	// origins are always accepted.
	AllowedOrigins []string
}

// Server serves one editor.
type Server struct {
	config   Config
	editor   *editor.Editor
	hub      *Hub
	renderer render.Renderer
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu   sync.RWMutex
	rows []model.FormControlRow
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the HTML renderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New creates a server for ed. hub must be the notifier ed was built with so
// that accepted changes reach connected sessions.
func New(cfg Config, ed *editor.Editor, hub *Hub, rows []model.FormControlRow, options ...Option) (*Server, error) {
	if ed == nil {
		return nil, errors.New("server: editor is required")
	}
	if hub == nil {
		return nil, errors.New("server: hub is required")
	}
	s := &Server{
		config: cfg,
		editor: ed,
		hub:    hub,
		logger: zap.NewNop(),
		rows:   rows,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		r, err := vanilla.New(vanilla.WithStylesheet("assets/"+vanilla.StylesheetName), vanilla.WithoutInlineStyles())
		if err != nil {
			return nil, fmt.Errorf("server: create renderer: %w", err)
		}
		s.renderer = r
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// SetRows swaps the descriptor rows and asks connected pages to reload.
func (s *Server) SetRows(rows []model.FormControlRow) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	s.hub.Reload()
}

func (s *Server) currentRows() []model.FormControlRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /config", s.handleConfig)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.config.Listen, err)
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("editor server listening", zap.String("addr", listener.Addr().String()))
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down editor server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	form, err := s.editor.RenderForm(s.currentRows())
	if err != nil {
		s.logger.Error("render form", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := s.renderer.Render(r.Context(), form, render.RenderOptions{
		Config:   s.editor.Config(),
		Title:    s.config.Title,
		Endpoint: websocketURL(r),
		Theme:    s.config.Theme,
	})
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(page(s.config.Title, out))
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	cfg := s.editor.Config()
	if cfg == nil {
		cfg = model.Config{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		s.logger.Warn("encode config", zap.Error(err))
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

func websocketURL(r *http.Request) string {
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	return scheme + "://" + r.Host + "/ws"
}

func page(title string, body []byte) []byte {
	if title == "" {
		title = "Card editor"
	}
	head := "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>" +
		html.EscapeString(title) + "</title>\n</head>\n<body>\n"
	out := make([]byte, 0, len(head)+len(body)+16)
	out = append(out, head...)
	out = append(out, body...)
	out = append(out, "</body>\n</html>\n"...)
	return out
}
