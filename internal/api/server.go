package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/collector"
	"QuoteChart/internal/model"
	"QuoteChart/internal/monitoring"
	"QuoteChart/internal/recorder"
	"QuoteChart/internal/watchlist"
)

// Server exposes chart data over HTTP.
type Server struct {
	addr       string
	router     *gin.Engine
	httpServer *http.Server
	handlers   *Handlers
	metrics    *monitoring.Metrics
}

// Handlers contains all API handlers
type Handlers struct {
	Quotes    *QuotesHandler
	Watchlist *WatchlistHandler
}

// NewServer creates a new API server. rec and metrics may be nil.
func NewServer(addr string, col *collector.Collector, wl *watchlist.Manager, rec recorder.Recorder, metrics *monitoring.Metrics) *Server {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}

	router := gin.New()
	s := &Server{
		addr:    addr,
		router:  router,
		metrics: metrics,
		handlers: &Handlers{
			Quotes:    NewQuotesHandler(col, wl, rec),
			Watchlist: NewWatchlistHandler(wl),
		},
	}
	s.setupRoutes()
	return s
}

// SetDefaultWindow sets the window used when a request has no window parameter.
func (s *Server) SetDefaultWindow(w model.TimeWindow) {
	s.handlers.Quotes.defaultWindow = w
}

// Router returns the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger())
	s.router.Use(s.metrics.MetricsMiddleware())

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		quotes := v1.Group("/quotes")
		{
			quotes.GET("", s.handlers.Quotes.Overview)
			quotes.GET("/:symbol/chart", s.handlers.Quotes.Chart)
			quotes.GET("/:symbol/signal", s.handlers.Quotes.Signal)
			quotes.GET("/:symbol/latest", s.handlers.Quotes.LatestSnapshot)
		}

		wl := v1.Group("/watchlist")
		{
			wl.GET("", s.handlers.Watchlist.List)
			wl.POST("", s.handlers.Watchlist.Add)
			wl.DELETE("/:symbol", s.handlers.Watchlist.Remove)
		}
	}
}

// Start serves until Stop is called. It returns nil after a graceful stop.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	log.Infof("starting API server on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Info("shutting down API server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("API server stopped gracefully")
	return nil
}

// requestLogger logs one line per request through logrus.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("http request")
	}
}
