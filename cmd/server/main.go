// Package main - Entry point for the landed-cost pricing server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"landed-cost/adapters/rates"
	"landed-cost/api"
	"landed-cost/internal/config"
	"landed-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Config file (.json or .yaml); missing file means defaults")
	envFile := flag.String("env", ".env", "Environment file loaded before the config")
	addr := flag.String("addr", "", "Server address (overrides config)")
	uiPath := flag.String("ui", "", "Path to UI files (overrides config)")
	flag.Parse()

	// a missing .env is normal outside development
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal("failed to load config", zap.Error(err))
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *uiPath != "" {
		cfg.Server.UIPath = *uiPath
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	source, closeRates, err := rates.Build(context.Background(), cfg.Rates)
	if err != nil {
		logging.Fatal("failed to configure rate sources", zap.Error(err))
	}
	defer closeRates()

	// Create API server
	apiServer := api.NewServer(version, cfg.Formula, source)

	// Create main mux
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))
	if cfg.Server.UIPath != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.Server.UIPath)))
	} else {
		mux.Handle("/", apiServer)
	}

	fmt.Printf("Landed Cost Server v%s\n", version)
	fmt.Printf("   API: http://localhost%s/api\n", cfg.Server.Addr)
	fmt.Printf("   Rates: %s\n", source.Name())
	fmt.Println()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logging.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("server stopped", zap.Error(err))
	}
	logging.Info("server stopped")
}
