package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtnitsch/llm-content-optimizer/internal/optimize"
	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
	"github.com/urfave/cli/v2"
)

// ServeAction runs the optimizer as a local HTTP service.
func ServeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	appCfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	optCfg := optimize.ApplyOverrides(optimizer.DefaultConfig(), appCfg.Optimize)

	srv := NewServer(optCfg, logger, Config{MaxBodyBytes: c.Int64("max-body-bytes")})

	addr := c.String("addr")
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("optimizer service starting", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(2)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(2)
	}

	logger.Info("server stopped")
	return nil
}
