// Command server exposes scene generation over HTTP for headless use.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"house-modeler/internal/api"
	"house-modeler/internal/config"
	"house-modeler/internal/generate"
	"house-modeler/internal/llm"
	"house-modeler/internal/logger"
	"house-modeler/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New()
	client, err := llm.New(cfg.LLMOptions())
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}
	gen, err := generate.New(client, cfg.Model, log, m)
	if err != nil {
		log.Fatal("Failed to create generator", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(gen, log), m, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr), zap.String("provider", client.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
