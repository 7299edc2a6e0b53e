// Package server exposes record lookup, certificate rendering and source
// management over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/render"
	"github.com/sells-group/certlookup/internal/source"
)

// Deps are the collaborators the handlers use.
type Deps struct {
	Catalog   *source.Catalog
	Loader    *source.Loader
	Adapter   *present.Adapter
	Engine    *render.Engine
	UploadDir string
}

// Options configure the HTTP surface.
type Options struct {
	// AccessKey gates /api. Empty disables the gate.
	AccessKey           string
	AllowedOrigins      []string
	FailedAuthPerMinute int // 0 means unlimited
	MaxUploadBytes      int64
	CSVEncoding         string
}

// Server holds the handler state.
type Server struct {
	deps     Deps
	opts     Options
	failures *rate.Limiter
}

// New creates a Server.
func New(deps Deps, opts Options) *Server {
	limit := rate.Inf
	burst := 0
	if opts.FailedAuthPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.FailedAuthPerMinute))
		burst = opts.FailedAuthPerMinute
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		deps:     deps,
		opts:     opts,
		failures: rate.NewLimiter(limit, burst),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", accessKeyHeader},
		ExposedHeaders: []string{requestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.gate)
		r.Get("/records", s.handleRecords)
		r.Get("/records/{identifier}/certificate.png", s.handleCertificate)
		r.Get("/export", s.handleExport)
		r.Get("/status", s.handleStatus)
		r.Post("/reload", s.handleReload)
		r.Post("/source", s.handleUpload)
	})

	return r
}

// Start serves h on port until ctx is cancelled, then shuts down
// gracefully.
func Start(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return eris.Wrap(err, "server listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	return nil
}
