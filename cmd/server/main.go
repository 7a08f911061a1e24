package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/bramble-partners/screener/internal/api"
	"github.com/bramble-partners/screener/internal/config"
	"github.com/bramble-partners/screener/internal/llm"
	"github.com/bramble-partners/screener/internal/memostore"
	"github.com/bramble-partners/screener/internal/pipeline"
	"github.com/bramble-partners/screener/internal/report"
	"github.com/bramble-partners/screener/internal/research"
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

	// Initialize clients.
	claude := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	registry := research.NewRegistry(cfg.CompaniesHouseURL, cfg.CompaniesHouseAPIKey)
	perplexity := research.NewPerplexity(cfg.PerplexityURL, cfg.PerplexityAPIKey, cfg.PerplexityModel)

	memos, err := memostore.New(cfg.MemoDir)
	if err != nil {
		log.Error("memo store init failed", "error", err)
		os.Exit(1)
	}

	var pdf *report.PDFExporter
	if cfg.PDFExport {
		pdf = report.NewPDFExporter(60 * time.Second)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, claude, registry, perplexity, memos, pdf, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, claude, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		claude.Close()
		registry.Close()
		perplexity.Close()
		if pdf != nil {
			pdf.Close()
		}
	}()

	log.Info("starting screener", "port", cfg.Port, "memo_dir", memos.Dir())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
