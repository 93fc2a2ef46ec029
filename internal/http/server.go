package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/config"
	applog "github.com/rgehrsitz/autosave/internal/log"
	"github.com/rgehrsitz/autosave/internal/middleware/ratelimit"
	"github.com/rgehrsitz/autosave/internal/middleware/trace"
	"github.com/rgehrsitz/autosave/internal/performance"
	"github.com/rgehrsitz/autosave/internal/summary"
	"github.com/rgehrsitz/autosave/internal/validation"
)

// APIPrefix is the common prefix of every API route
const APIPrefix = "/blackrock/challenge/v1"

// ServiceName is reported by the health endpoint
const ServiceName = "autosave"

// maxBodyBytes bounds a request body
const maxBodyBytes = 4 << 20

// Services bundles what the handlers call into
type Services struct {
	Engine    *calculation.Engine
	Compare   *compare.CompareEngine
	Validator *validation.Validator
	Analyzer  *summary.Analyzer
	Reporter  *performance.Reporter
	Input     *config.InputParser
}

// NewServices wires the default collaborators around one calculation engine
func NewServices(engine *calculation.Engine) Services {
	return Services{
		Engine:    engine,
		Compare:   compare.NewCompareEngine(engine),
		Validator: validation.NewValidator(),
		Analyzer:  summary.NewAnalyzer(),
		Reporter:  performance.NewReporter(),
		Input:     config.NewInputParser(),
	}
}

// Server is the JSON API server
type Server struct {
	http.Server
	services Services
	logger   *applog.Logger
	limiter  *ratelimit.Limiter
	version  string
	now      func() time.Time

	shutdownOnce sync.Once
}

// NewServer builds the server and its middleware chain. A zero rate limit in
// cfg disables limiting.
func NewServer(cfg *config.Config, services Services, logger *applog.Logger, version string) *Server {
	s := &Server{
		services: services,
		logger:   logger.WithComponent(applog.ComponentHTTP),
		version:  version,
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST "+APIPrefix+"/transactions:parse", s.handleParse)
	mux.HandleFunc("POST "+APIPrefix+"/transactions:validator", s.handleValidate)
	mux.HandleFunc("POST "+APIPrefix+"/transactions:filter", s.handleFilter)
	mux.HandleFunc("POST "+APIPrefix+"/transactions:summary", s.handleSummary)
	mux.HandleFunc("POST "+APIPrefix+"/returns:nps", s.handleReturns(s.services.Engine.Assumptions.TaxAdvantagedTrack))
	mux.HandleFunc("POST "+APIPrefix+"/returns:index", s.handleReturns(s.services.Engine.Assumptions.MarketTrack))
	mux.HandleFunc("POST "+APIPrefix+"/returns:compare", s.handleCompare)
	mux.HandleFunc("GET "+APIPrefix+"/performance", s.handlePerformance)

	var handler http.Handler = withSecurityHeaders(mux)
	if cfg.RateLimit > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimit})
		handler = s.limiter.Middleware(extractClientIP, s.onRateLimit)(handler)
	}
	handler = trace.NewMiddleware(logger, extractClientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * cfg.WriteTimeout,
	}
	return s
}

// Shutdown stops the limiter cleanup and drains the HTTP server
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

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).Warn("rate limit exceeded", applog.FieldClientIP, extractClientIP(r))
	writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded, try again later"})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
