package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/share"
	"github.com/hpungsan/promptbin/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server bundles the HTTP server with the share manager whose tokens must be
// revoked when the server goes down.
type Server struct {
	httpServer *http.Server
	shares     *share.Manager
	log        logger.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, cfg *config.Config, shares *share.Manager, log logger.Logger, version string) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("template sub-FS: %v", err))
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static sub-FS: %v", err))
	}

	renderer := NewRenderer(templateSub, version, log)

	h := &Handlers{
		st:       st,
		cfg:      cfg,
		shares:   shares,
		renderer: renderer,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	// Pages
	r.Get("/", h.HandleIndex)
	r.Get("/create", h.HandleCreatePage)
	r.Get("/view/{id}", h.HandleViewPage)
	r.Get("/edit/{id}", h.HandleEditPage)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Post("/prompts", h.HandleAPICreate)
		r.Put("/prompts/{id}", h.HandleAPIUpdate)
		r.Delete("/prompts/{id}", h.HandleAPIDelete)
		r.Get("/search", h.HandleAPISearch)
		r.Post("/preview", h.HandleAPIPreview)
		r.Post("/share/{category}/{id}", h.HandleShareIssue)
		r.Delete("/share/{token}", h.HandleShareRevoke)
	})

	// Public share surface
	r.Get("/share/{token}/{id}", h.HandleSharePage)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler: r,
		},
		shares: shares,
		log:    log,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", ww.Status()),
				logger.Duration("took", time.Since(start)))
		})
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or
// SIGINT/SIGTERM arrives. Shutdown revokes every live share token before
// returning, so nothing stays resolvable across restarts.
func (s *Server) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.log.Info("web server running", logger.String("addr", "http://"+s.httpServer.Addr))
	if strings.Contains(s.httpServer.Addr, "0.0.0.0") || strings.Contains(s.httpServer.Addr, "::") {
		s.log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		s.shares.RevokeAll()
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	s.shares.RevokeAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
