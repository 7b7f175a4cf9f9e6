package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/container"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := container.New(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			config.Log.WithError(err).Warn("Failed to close database")
		}
	}()

	server := &http.Server{
		Addr:              c.Config.HTTP.Addr,
		Handler:           c.Handler(),
		ReadTimeout:       c.Config.HTTP.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      c.Config.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		config.Log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	config.Log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		config.Log.WithError(err).Error("Graceful shutdown failed")
		return
	}
	config.Log.Info("HTTP server stopped")
}
