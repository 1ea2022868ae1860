package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"myspace/internal/cache"
	applog "myspace/internal/log"
	"myspace/internal/middleware/ratelimit"
	"myspace/internal/middleware/security"
	"myspace/internal/middleware/trace"
	"myspace/internal/source"
	"myspace/internal/view"
	appweb "myspace/web"
)

// Config carries the server's tunables.
type Config struct {
	Addr              string
	APITimeout        time.Duration
	DayReloadInterval time.Duration
	RateLimitRPM      int
	// TrustedProxies are CIDRs, on top of loopback and private ranges, whose
	// X-Forwarded-For and X-Real-IP headers name the client.
	TrustedProxies []string
}

// Server serves the dashboard pages, their htmx partials and the
// operational endpoints.
type Server struct {
	http.Server

	templates *template.Template
	reader    source.Reader
	views     view.Builder
	cfg       Config

	logger           *applog.Logger
	structuredLogger *applog.StructuredLogger
	traceMiddleware  *trace.Middleware
	securityDetector *security.Detector
	rateLimiter      *ratelimit.Limiter
	caches           *cache.Manager

	appMetrics   *appMetrics
	shuttingDown atomic.Bool
	shutdownOnce sync.Once
}

type appMetrics struct {
	pagesRendered int64
	fetchFailures int64
	uptime        time.Time
}

// cacheStatser is implemented by readers that memoise payloads.
type cacheStatser interface {
	Stats() map[string]cache.Stats
}

// NewServer parses the embedded templates and wires routes and middleware.
// caches may be nil; when set it is stopped on Shutdown.
func NewServer(cfg Config, reader source.Reader, views view.Builder, logger *applog.Logger, caches *cache.Manager) (*Server, error) {
	if reader == nil {
		return nil, errors.New("nil reader")
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 10 * time.Second
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates:        t,
		reader:           reader,
		views:            views,
		cfg:              cfg,
		logger:           logger.WithComponent(applog.ComponentHTTP),
		structuredLogger: applog.NewStructuredLogger(logger),
		securityDetector: security.NewDetector(logger),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitRPM,
		}),
		caches:     caches,
		appMetrics: &appMetrics{uptime: time.Now()},
	}
	for _, cidr := range cfg.TrustedProxies {
		if err := s.securityDetector.AddTrustedProxy(cidr); err != nil {
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}
	s.traceMiddleware = trace.NewMiddleware(logger, s.securityDetector.ExtractClientIP)

	s.Server = http.Server{
		Addr:           cfg.Addr,
		Handler:        s.routes(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	pages := http.NewServeMux()

	pages.HandleFunc("GET /{$}", s.handleRoot)
	pages.HandleFunc("GET /today", s.handleToday)
	pages.HandleFunc("GET /month", s.handleMonth)
	pages.HandleFunc("GET /{year}/{month}", s.handleMonthRedirect)

	pages.HandleFunc("GET /{year}/{month}/{day}", s.handleDayPage)
	pages.HandleFunc("GET /{year}/{month}/calendar", s.handleCalendarPage)
	pages.HandleFunc("GET /{year}/{month}/projects", s.handleProjectsPage)

	pages.HandleFunc("GET /ui/{year}/{month}/{day}", s.handleDayPartial)
	pages.HandleFunc("GET /ui/{year}/{month}/calendar", s.handleCalendarPartial)
	pages.HandleFunc("GET /ui/{year}/{month}/projects", s.handleProjectsPartial)
	pages.HandleFunc("GET /", s.handleNotFound)

	limited := s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WarnContext(r.Context(), "Rate limit exceeded",
			applog.FieldClientIP, s.securityDetector.ExtractClientIP(r),
			applog.FieldPath, r.URL.Path)
		TooManyRequestsError("Rate limit exceeded. Please try again later.").Write(w)
	})(security.NoStore(pages))

	root := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		root.Handle("GET /static/{file}", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}
	root.HandleFunc("GET /healthz", s.handleHealth)
	root.HandleFunc("GET /readyz", s.handleReady)
	root.HandleFunc("GET /metrics", s.handleMetrics)
	root.Handle("/", limited)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	return s.traceMiddleware.Middleware(headers.Middleware(s.securityDetector.Middleware(root)))
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.shuttingDown.Store(true)
		s.rateLimiter.Stop()
		if s.caches != nil {
			s.caches.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withTimeout bounds one upstream read by the configured API timeout.
func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.APITimeout)
}

func (s *Server) requestLogger(r *http.Request) *applog.Logger {
	if l := applog.FromContext(r.Context()); l.Component() != "unknown" {
		return l
	}
	return s.logger
}
