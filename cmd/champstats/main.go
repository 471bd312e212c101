package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize composition root with all dependencies
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Ensure cleanup on exit
	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	addr := root.Config.Server.Listen
	root.Logger.Info("Starting stats server", zap.String("addr", addr))
	go func() {
		if err := root.HTTPServer.Start(addr); err != nil {
			root.Logger.Error("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := root.HTTPServer.Stop(ctx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	root.Logger.Info("Server exited")
}
