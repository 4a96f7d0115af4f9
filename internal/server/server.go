// Package server exposes analyses over HTTP: datasets are loaded and
// selected, methods are run through the dispatcher and the displayed chart
// is served as JSON, a report page or an image.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Bgoodwin24/insightforge/internal/charts"
	"github.com/Bgoodwin24/insightforge/internal/config"
	"github.com/Bgoodwin24/insightforge/internal/dataset"
	"github.com/Bgoodwin24/insightforge/internal/dispatcher"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/mocks"
	"github.com/Bgoodwin24/insightforge/internal/reports"
)

// Server represents the main application server
type Server struct {
	Config      *config.Config
	Datasets    *dataset.Store
	Dispatcher  *dispatcher.Dispatcher
	Charts      *charts.ChartGenerator
	Generator   *reports.Generator
	MockService *mocks.MockService
	Version     string
	started     time.Time
	log         *logger.Logger
}

// NewServer creates a new server instance running analyses through f
func NewServer(cfg *config.Config, store *dataset.Store, f dispatcher.Fetcher) *Server {
	defaults := dispatcher.Defaults{
		Column:     cfg.DefaultColumnIndex,
		GroupBy:    cfg.DefaultGroupByIndex,
		RowField:   cfg.DefaultRowFieldIndex,
		ValueField: cfg.DefaultValueFieldIndex,
	}
	version := config.GetVersion()
	cg := charts.NewChartGenerator(0, 0)

	s := &Server{
		Config:     cfg,
		Datasets:   store,
		Dispatcher: dispatcher.New(f, defaults),
		Charts:     cg,
		Generator:  reports.NewGenerator(cg, version),
		Version:    version,
		started:    time.Now(),
		log:        logger.WithComponent("server"),
	}

	if cfg.MockupMode {
		s.MockService = mocks.NewMockService(store)
		s.log.Info("mockup mode enabled, serving analytics routes locally", nil)
	}
	return s
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.HandleHealth)
	r.Get("/methods", s.HandleMethods)

	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", s.HandleListDatasets)
		r.Post("/", s.HandleUploadDataset)
		r.Put("/{id}/active", s.HandleActivateDataset)
	})

	r.Post("/analysis", s.HandleAnalysis)

	r.Route("/chart", func(r chi.Router) {
		r.Get("/", s.HandleChart)
		r.Get("/report", s.HandleChartReport)
		r.Get("/page", s.HandleChartPage)
		r.Get("/png", s.HandleChartPNG)
	})

	if s.MockService != nil {
		s.MockService.Register(r)
	}
	return r
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		})
	})
}
