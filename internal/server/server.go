// Package server exposes suite runs over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"gambit/internal/analysis/report"
	"gambit/internal/config"
	"gambit/internal/observability"
	"gambit/internal/orchestrator"
)

// Server wires the suite runner behind a gin API. Runs are serialized: the
// suite is sequential by definition, so concurrent triggers are rejected
// rather than queued.
type Server struct {
	runner   *orchestrator.Runner
	reporter *report.Reporter
	logger   *observability.Logger

	engine     *gin.Engine
	httpServer *http.Server
	shutdown   time.Duration

	runMu sync.Mutex

	stateMu sync.RWMutex
	latest  *orchestrator.SuiteRun
}

// New builds the server. reporter may be nil to skip artifact generation.
func New(cfg config.ServerConfig, runner *orchestrator.Runner, reporter *report.Reporter, logger *observability.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		runner:   runner,
		reporter: reporter,
		logger:   logger,
		engine:   engine,
		shutdown: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
	}
	if s.shutdown <= 0 {
		s.shutdown = 10 * time.Second
	}
	engine.Use(s.requestLog())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.POST("/runs", s.handleTriggerRun)
	api.GET("/runs/latest", s.handleLatestRun)
	api.GET("/report", s.handleReport)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a triggered run blocks until the suite finishes
	}
	return s
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		s.logger.Info("http server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds())
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTriggerRun(c *gin.Context) {
	if !s.runMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a suite run is already in progress"})
		return
	}
	defer s.runMu.Unlock()

	run, err := s.runner.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	if s.reporter != nil {
		if _, _, err := s.reporter.Generate(artifactFor(run)); err != nil {
			s.logger.Warn("report generation failed", "run_id", run.RunID, "error", err.Error())
		}
	}

	s.stateMu.Lock()
	s.latest = run
	s.stateMu.Unlock()

	c.JSON(http.StatusOK, report.BuildView(artifactFor(run)))
}

func (s *Server) handleLatestRun(c *gin.Context) {
	s.stateMu.RLock()
	run := s.latest
	s.stateMu.RUnlock()

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no suite run recorded yet"})
		return
	}
	c.JSON(http.StatusOK, report.BuildView(artifactFor(run)))
}

func (s *Server) handleReport(c *gin.Context) {
	s.stateMu.RLock()
	run := s.latest
	s.stateMu.RUnlock()

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no suite run recorded yet"})
		return
	}
	c.JSON(http.StatusOK, run.Report)
}

func artifactFor(run *orchestrator.SuiteRun) report.RunArtifact {
	return report.RunArtifact{
		RunID:      run.RunID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Outcomes:   run.Outcomes,
		Suite:      run.Report,
	}
}
