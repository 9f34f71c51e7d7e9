package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/deckgen/internal/api"
	"github.com/dgallion1/deckgen/internal/config"
	"github.com/dgallion1/deckgen/internal/llm"
	"github.com/dgallion1/deckgen/internal/parser"
	"github.com/dgallion1/deckgen/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractor := parser.NewExtractor(cfg.MaxDocumentBytes, cfg.PDFFallbackPdftotext, log)

	// A nil model sends every request down the fallback path.
	var model pipeline.Model
	var gemini *llm.GeminiClient
	if cfg.HasModel() {
		var err error
		gemini, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ModelTimeout, llm.NewLLMStats(cfg.LLMStatsWindow))
		if err != nil {
			log.Error("gemini client unavailable, using fallback generation", "error", err)
			gemini = nil
		} else {
			model = gemini
		}
	} else {
		log.Info("GEMINI_API_KEY not set, using fallback generation")
	}

	orch := pipeline.NewOrchestrator(model, extractor, pipeline.Options{PadFallbackSlides: cfg.FallbackPadSlides}, log)
	srv := api.NewServer(orch, gemini, log, cfg)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.ModelTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", "error", err)
		}
		cancel()
	}()

	log.Info("starting deckgen", "port", cfg.Port, "model", cfg.GeminiModel, "model_enabled", model != nil)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
