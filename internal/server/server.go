// Package server exposes the predictor and its history over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/document"
	"github.com/sant0-9/firpredict/internal/logging"
	"github.com/sant0-9/firpredict/internal/predict"
)

const shutdownTimeout = 5 * time.Second

// Server serves the prediction API
type Server struct {
	predictor    *predict.Predictor
	logger       *zap.Logger
	exportFormat string
	router       *gin.Engine
}

// Options configures a Server
type Options struct {
	// ExportFormat is used when an export request names no format
	ExportFormat string
}

func New(p *predict.Predictor, logger *zap.Logger, opts Options) *Server {
	if opts.ExportFormat == "" {
		opts.ExportFormat = string(document.FormatDocx)
	}
	s := &Server{
		predictor:    p,
		logger:       logging.OrNop(logger).Named("http"),
		exportFormat: opts.ExportFormat,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.logger), requestLogger(s.logger))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/predictions", s.handlePredict)
		api.GET("/predictions", s.handleList)
		api.DELETE("/predictions", s.handleClear)
		api.GET("/predictions/:id", s.handleGet)
		api.GET("/predictions/:id/export", s.handleExport)
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	return r
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
