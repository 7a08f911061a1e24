// Command screener runs a one-shot pitch deck screening from the command
// line and writes the memo HTML next to the other stored memos.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/bramble-partners/screener/internal/config"
	"github.com/bramble-partners/screener/internal/llm"
	"github.com/bramble-partners/screener/internal/memostore"
	"github.com/bramble-partners/screener/internal/pipeline"
	"github.com/bramble-partners/screener/internal/report"
	"github.com/bramble-partners/screener/internal/research"
	"github.com/bramble-partners/screener/internal/screen"
)

func main() {
	notes := pflag.String("notes", "", "additional meeting notes to feed the analysts")
	output := pflag.String("output", "", "output directory for memos (default: MEMO_DIR or ./memos)")
	noResearch := pflag.Bool("no-research", false, "skip external research lookups")
	exportPDF := pflag.Bool("pdf", false, "also export the memo as PDF")
	verbose := pflag.Bool("verbose", false, "log pipeline progress")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <deck file>\n", filepath.Base(os.Args[0]))
		pflag.PrintDefaults()
		os.Exit(2)
	}
	deckPath := pflag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Load()
	if cfg.AnthropicAPIKey == "" {
		fmt.Fprintln(os.Stderr, "error: ANTHROPIC_API_KEY is required")
		os.Exit(1)
	}
	if *output != "" {
		cfg.MemoDir = *output
	}

	data, err := os.ReadFile(deckPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: read deck: %v\n", err)
		os.Exit(1)
	}

	claude := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	registry := research.NewRegistry(cfg.CompaniesHouseURL, cfg.CompaniesHouseAPIKey)
	perplexity := research.NewPerplexity(cfg.PerplexityURL, cfg.PerplexityAPIKey, cfg.PerplexityModel)
	defer claude.Close()
	defer registry.Close()
	defer perplexity.Close()

	memos, err := memostore.New(cfg.MemoDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var pdf *report.PDFExporter
	if *exportPDF {
		pdf = report.NewPDFExporter(60 * time.Second)
		defer pdf.Close()
	}

	prompter := &screen.Prompter{
		Thesis:      cfg.Thesis,
		FitCriteria: cfg.FitCriteria,
	}
	worker := pipeline.NewWorker(claude, prompter, registry, perplexity, memos, pdf, log, cfg.PDFFallbackPdftotext)

	now := time.Now()
	job := &pipeline.Job{
		ID:         pipeline.NewID(),
		Status:     pipeline.StatusQueued,
		Phase:      "queued",
		Filename:   filepath.Base(deckPath),
		Notes:      *notes,
		NoResearch: *noResearch,
		ExportPDF:  *exportPDF,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.SetFileData(data)

	worker.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		fmt.Fprintf(os.Stderr, "screening failed during %s\n", snap.Phase)
		for _, e := range snap.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Printf("%s: %s\n", snap.CompanyName, snap.Verdict)
	fmt.Printf("memo: %s\n", filepath.Join(cfg.MemoDir, snap.MemoFile))
	if snap.PDFFile != "" {
		fmt.Printf("pdf:  %s\n", filepath.Join(cfg.MemoDir, snap.PDFFile))
	}
}
