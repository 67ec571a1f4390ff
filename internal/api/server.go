// Package api serves the insight service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/gin-gonic/gin"
)

// Service is the part of service.InsightService the API calls.
type Service interface {
	Today(ctx context.Context, now time.Time, force bool) (*service.TodayView, error)
	Questions(ctx context.Context, now time.Time) ([]service.QuestionView, error)
	Ask(ctx context.Context, id domain.QuestionID, now time.Time) (domain.DailyInsightResponse, error)
	Alerts(ctx context.Context, now time.Time) ([]domain.DeficiencyCheck, error)
	DismissAlert(ctx context.Context, nutrientID string, severity domain.Severity, now time.Time) (domain.AlertDismissal, error)
	ModelStatus(ctx context.Context) (service.ModelView, error)
	ModelProgress() (llm.Progress, llm.ModelStatus, error)
	PullModel(ctx context.Context, onProgress func(llm.Progress)) error
	CancelPull() error
}

var _ Service = (*service.InsightService)(nil)

// Server owns the gin engine and the single background model download.
type Server struct {
	svc    Service
	logger *slog.Logger
	now    func() time.Time
	engine *gin.Engine

	// ProgressInterval is how often the websocket pushes a progress frame.
	ProgressInterval time.Duration

	mu      sync.Mutex
	pulling bool
	pullErr string
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the request and download logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func New(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:              svc,
		logger:           slog.New(slog.DiscardHandler),
		now:              time.Now,
		ProgressInterval: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.health)
	v1 := r.Group("/v1")
	{
		v1.GET("/today", s.today)
		v1.GET("/questions", s.questions)
		v1.GET("/insights/:id", s.insight)
		v1.GET("/alerts", s.alerts)
		v1.POST("/alerts/dismiss", s.dismissAlert)

		model := v1.Group("/model")
		model.GET("/status", s.modelStatus)
		model.POST("/download", s.startDownload)
		model.DELETE("/download", s.cancelDownload)
		model.GET("/download/ws", s.downloadWS)
	}
	s.engine = r
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	_ = s.svc.CancelPull()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
