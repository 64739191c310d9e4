package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sentiment-lab/internal/observability"
	"sentiment-lab/internal/pipeline"
	"sentiment-lab/internal/reporting"
	"sentiment-lab/pkg/logger"
)

var (
	serveInput    inputFlags
	serveAddr     string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Re-run the analysis on an interval and serve the latest report",
	Long: `Run the analysis against the configured sources every --interval and
serve the most recent report over HTTP:

  GET /health   service status and last run
  GET /report   latest report as JSON
  GET /metrics  Prometheus metrics

Examples:
  sentimentlab serve --fixtures
  sentimentlab serve --source clickhouse --clickhouse-dsn clickhouse://localhost:9000/market --interval 15m`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveInput.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from SERVER_ADDR)")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 0, "Refresh interval (default from SERVER_REFRESH_INTERVAL)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, &serveInput)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveInterval > 0 {
		cfg.Server.RefreshInterval = serveInterval
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := observability.NewMetrics(observability.DefaultNamespace, reg)

	a, err := newAnalysis(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer a.close()

	srv := newServer(a.run, reg, log)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv.loop(gctx, cfg.Server.RefreshInterval)
		return nil
	})
	g.Go(func() error {
		log.Infow("listening", "addr", cfg.Server.Addr, "refresh_interval", cfg.Server.RefreshInterval)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Infow("server stopped")
	return err
}

// runFunc produces one pipeline result.
type runFunc func(ctx context.Context) (*pipeline.Result, error)

// server refreshes the analysis and serves the latest report. It keeps
// only the most recent successful report.
type server struct {
	run      runFunc
	gatherer prometheus.Gatherer
	logger   *logger.Logger
	clock    func() time.Time

	mu      sync.RWMutex
	latest  *reporting.Report
	lastRun time.Time
	lastErr error
	runs    int
}

func newServer(run runFunc, g prometheus.Gatherer, log *logger.Logger) *server {
	if log == nil {
		log = logger.Nop()
	}
	return &server{run: run, gatherer: g, logger: log, clock: time.Now}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", observability.Handler(s.gatherer))

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/health", s.handleHealth)
		r.Get("/report", s.handleReport)
	})
	return r
}

// loop refreshes immediately and then every interval until ctx is done.
func (s *server) loop(ctx context.Context, interval time.Duration) {
	s.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs the analysis once. A failed run keeps the previous report.
func (s *server) refresh(ctx context.Context) {
	started := s.clock()

	var report *reporting.Report
	res, err := s.run(ctx)
	if err == nil {
		report, err = reporting.Generate(res)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	s.lastRun = started
	s.lastErr = err
	if err != nil {
		s.logger.Errorw("refresh failed", "error", err)
		return
	}
	s.latest = report
	s.logger.Infow("report refreshed",
		"run_id", report.RunID,
		"trades", report.DataSummary.TotalTrades,
		"clusters", len(report.Clusters),
		"warnings", len(report.Warnings),
		"duration", s.clock().Sub(started))
}

type healthResponse struct {
	Status    string    `json:"status"`
	Runs      int       `json:"runs"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := healthResponse{Status: "ok", Runs: s.runs, LastRun: s.lastRun}
	switch {
	case s.lastErr != nil:
		resp.Status = "degraded"
		resp.LastError = s.lastErr.Error()
	case s.latest == nil:
		resp.Status = "starting"
	}
	if s.latest != nil {
		resp.RunID = s.latest.RunID
	}
	render.JSON(w, r, resp)
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.latest
	s.mu.RUnlock()

	if report == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"error": "no report available yet"})
		return
	}
	render.JSON(w, r, report)
}
