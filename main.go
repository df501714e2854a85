package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/calculators"
	"skybrief/internal/config"
	"skybrief/internal/llm"
	"skybrief/internal/logger"
	"skybrief/internal/orchestrator"
	"skybrief/internal/reports"
	"skybrief/internal/server"
	"skybrief/internal/storage"
)

func main() {
	ctx := context.Background()
	log := logger.GetGlobalLogger().WithComponent("main")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("failed to load configuration", err)
	}

	mode := storage.ModeFor(cfg)
	log.Info("starting sky briefing service", map[string]interface{}{
		"version":     config.GetVersion(),
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"storage":     string(mode),
	})

	store, err := storage.NewStorageClient(ctx, mode, cfg)
	if err != nil {
		log.Fatal("failed to initialize storage", err)
	}
	defer store.Close()

	var polisher briefing.NarrativePolisher
	if p := llm.NewPolisher(cfg.OpenAIAPIKey, cfg.OpenAIModel); p != nil {
		polisher = p
		log.Info("narrative polishing enabled", map[string]interface{}{"model": cfg.OpenAIModel})
	} else {
		log.Info("no OpenAI key configured, narratives ship unpolished")
	}

	synth := briefing.New(orchestrator.New(calculators.New(cfg)), polisher)
	srv := server.New(cfg, synth, reports.NewGenerator(), store)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", err)
	}

	log.Info("server stopped")
}
