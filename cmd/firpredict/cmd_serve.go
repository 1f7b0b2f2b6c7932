package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/server"
	"github.com/sant0-9/firpredict/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the predictor over HTTP",
	Long: `Starts a JSON API for predictions, the in-memory history and report
downloads. History lives only as long as the process.

Endpoints:
  POST   /api/predictions              {"case": "..."}
  GET    /api/predictions
  DELETE /api/predictions
  GET    /api/predictions/:id
  GET    /api/predictions/:id/export?format=docx|md|html`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	p := predict.New(provider, session.NewHistory(), logger, predict.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
	srv := server.New(p, logger, server.Options{ExportFormat: cfg.Export.Format})

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}
