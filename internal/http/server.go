// Package http exposes the reporting engine as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"finview/internal/cache"
	"finview/internal/log"
	"finview/internal/middleware/security"
	"finview/internal/middleware/trace"
	"finview/internal/reports"
	"finview/internal/services"
	"finview/internal/source"
	"finview/internal/views"
)

// Deps bundles the services the API surface is built on.
type Deps struct {
	Reader   source.Reader
	Reports  *reports.Service
	Search   *services.SearchService
	Analysis *services.AnalysisService
	Views    *views.Service
	Logger   *log.Logger
}

type Server struct {
	http.Server
	reader   source.Reader
	reports  *reports.Service
	search   *services.SearchService
	analysis *services.AnalysisService
	views    *views.Service
	logger   *log.Logger

	// Dashboard payloads are cached briefly; the underlying ledger
	// changes between runs, not between requests.
	homeCache   *cache.LRUCache[views.HomePayload]
	eventsCache *cache.LRUCache[views.EventsPayload]
	caches      *cache.Manager

	shutdownOnce sync.Once

	// now anchors default reference dates; injectable for tests.
	now func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		reader:      deps.Reader,
		reports:     deps.Reports,
		search:      deps.Search,
		analysis:    deps.Analysis,
		views:       deps.Views,
		logger:      logger.WithComponent(log.ComponentHTTP),
		homeCache:   cache.NewLRUCache[views.HomePayload](100, 5*time.Minute),
		eventsCache: cache.NewLRUCache[views.EventsPayload](200, 5*time.Minute),
		caches:      cache.NewManager(),
		now:         time.Now,
	}
	s.caches.Register(s.homeCache)
	s.caches.Register(s.eventsCache)
	s.caches.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/home", s.handleHome)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/reports/category", s.handleCategoryReport)
	mux.HandleFunc("/api/reports/weekday", s.handleWeekdayReport)
	mux.HandleFunc("/api/reports/workday", s.handleWorkdayReport)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/search/transfers", s.handleSearchTransfers)
	mux.HandleFunc("/api/search/phone", s.handleSearchPhone)
	mux.HandleFunc("/api/investment", s.handleInvestment)
	mux.HandleFunc("/api/cashback", s.handleCashback)

	traced := trace.NewMiddleware(trace.ExtractClientIP, logger)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:    addr,
		Handler: traced.Middleware(headers.Middleware(mux)),
	}
	return s
}

// Shutdown stops the cache cleanup and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
