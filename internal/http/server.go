package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"activitylog/internal/core"
	"activitylog/internal/dashboard"
	"activitylog/internal/log"
	"activitylog/internal/middleware/ratelimit"
	"activitylog/internal/middleware/security"
	"activitylog/internal/middleware/trace"
	"activitylog/internal/observability"
	appweb "activitylog/web"
)

// ReportService is the pipeline the handlers render.
type ReportService interface {
	Report(ctx context.Context) (core.Report, error)
	Check(ctx context.Context) error
}

// Options tunes the server beyond its address.
type Options struct {
	Dashboard          dashboard.Options
	RateLimitPerMinute int
	ReportTimeout      time.Duration
}

type Server struct {
	http.Server
	templates     *template.Template
	reports       ReportService
	chartOptions  dashboard.Options
	reportTimeout time.Duration
	logger        *log.Logger
	limiter       *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, reports ReportService, opts Options, logger *log.Logger) *Server {
	mux := http.NewServeMux()
	logger = logger.WithComponent(log.ComponentHTTP)

	if opts.Dashboard.AssetsHost == "" {
		opts.Dashboard.AssetsHost = dashboard.DefaultAssetsHost
	}
	if opts.ReportTimeout <= 0 {
		opts.ReportTimeout = 30 * time.Second
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		reports:       reports,
		chartOptions:  opts.Dashboard,
		reportTimeout: opts.ReportTimeout,
		logger:        logger,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.LogError(context.Background(), "Failed parsing templates", err, log.OpStartup, nil)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.LogError(context.Background(), "Failed to mount embedded static FS", err, log.OpStartup, nil)
	}

	pipeline := func(h http.HandlerFunc) http.Handler { return h }
	if opts.RateLimitPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
		limit := s.limiter.Middleware(extractClientIP, func(r *http.Request) {
			observability.RecordRateLimited(r.URL.Path)
			log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, extractClientIP(r), log.FieldPath, r.URL.Path)
		})
		pipeline = func(h http.HandlerFunc) http.Handler { return limit(h) }
	}

	mux.Handle("/", pipeline(s.handleDashboard))
	mux.Handle("/api/summary", pipeline(s.handleSummary))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig(opts.Dashboard.AssetsHost))
	tracer := trace.NewMiddleware(extractClientIP)
	s.Handler = log.Middleware(logger)(tracer.Middleware(headers.Middleware(mux)))

	return s
}

// Shutdown gracefully shuts down the server and the limiter's cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
