package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bramble-partners/screener/internal/llm"
	"github.com/bramble-partners/screener/internal/memo"
	"github.com/bramble-partners/screener/internal/memostore"
	"github.com/bramble-partners/screener/internal/parser"
	"github.com/bramble-partners/screener/internal/report"
	"github.com/bramble-partners/screener/internal/research"
	"github.com/bramble-partners/screener/internal/screen"
)

// Worker runs a single screening job end to end: parse the deck, identify
// the company, gather research, run the debate, render and store the memo.
type Worker struct {
	claude     *llm.Client
	prompter   *screen.Prompter
	registry   *research.Registry
	perplexity *research.Perplexity
	memos      *memostore.Store
	pdf        *report.PDFExporter
	log        *slog.Logger

	pdfFallback bool
}

func NewWorker(claude *llm.Client, prompter *screen.Prompter, registry *research.Registry, perplexity *research.Perplexity, memos *memostore.Store, pdf *report.PDFExporter, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		claude:      claude,
		prompter:    prompter,
		registry:    registry,
		perplexity:  perplexity,
		memos:       memos,
		pdf:         pdf,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full screening pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse the deck.
	job.SetStatus(StatusParsing, "parsing deck")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing deck")
		return
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	d, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing deck")
		return
	}
	if d.Empty() {
		log.Error("no extractable text", "filename", job.Filename)
		job.AddError("no extractable text in deck (image-only PDF?)")
		job.SetStatus(StatusFailed, "parsing deck")
		return
	}
	deckText := d.Text()
	job.ContentHash = ContentHashHex([]byte(deckText))
	log.Info("deck parsed", "pages", len(d.Pages))

	// Phase 2: Identify the company.
	job.SetStatus(StatusIdentifying, "identifying company")
	raw, err := w.complete(ctx, log, screen.MaxTokensIdentify, w.prompter.IdentifyPrompt(deckText))
	if err != nil {
		log.Warn("identification failed, using defaults", "error", err)
		job.AddError(fmt.Sprintf("identify: %s", err))
		raw = ""
	}
	info := screen.ParseCompanyInfo(raw)
	job.SetCompany(info.CompanyName)
	log.Info("company identified", "company", info.CompanyName, "industry", info.Industry)

	// Phase 3: External research.
	researchText := ""
	if !job.NoResearch {
		job.SetStatus(StatusResearching, "researching company")
		researchText = w.research(ctx, log, info)
	} else {
		log.Info("research skipped")
	}

	// Phase 4: The debate.
	job.SetStatus(StatusDebating, "running analyst debate")
	shared := w.prompter.SharedContext(deckText, researchText, job.Notes)

	bullCase, err := w.complete(ctx, log, screen.MaxTokensAnalyst, w.prompter.BullPrompt(shared))
	if err != nil {
		log.Error("bull analyst failed", "error", err)
		job.AddError(fmt.Sprintf("bull analyst: %s", err))
		job.SetStatus(StatusFailed, "running analyst debate")
		return
	}

	bearCase, err := w.complete(ctx, log, screen.MaxTokensAnalyst, w.prompter.BearPrompt(shared))
	if err != nil {
		log.Error("bear analyst failed", "error", err)
		job.AddError(fmt.Sprintf("bear analyst: %s", err))
		job.SetStatus(StatusFailed, "running analyst debate")
		return
	}

	synthesis, err := w.complete(ctx, log, screen.MaxTokensSynthesis, w.prompter.SynthesisPrompt(bullCase, bearCase, shared))
	if err != nil {
		log.Error("synthesis failed", "error", err)
		job.AddError(fmt.Sprintf("synthesis: %s", err))
		job.SetStatus(StatusFailed, "running analyst debate")
		return
	}
	analysis := screen.BuildAnalysis(bullCase, bearCase, synthesis)

	// Phase 5: Render and store the memo.
	job.SetStatus(StatusRendering, "rendering memo")
	m := memo.Parse(analysis.Memo)
	if m.CompanyName == "" {
		m.CompanyName = info.CompanyName
	}
	html := report.Assemble(m, report.Params{
		Source:       job.Filename,
		BullAnalyst:  analysis.BullCase,
		BearAnalyst:  analysis.BearCase,
		Deliberation: analysis.Deliberation,
	})

	memoFile, err := w.memos.Save(memostore.FileName(m.CompanyName, time.Now()), html)
	if err != nil {
		log.Error("memo save failed", "error", err)
		job.AddError(fmt.Sprintf("save memo: %s", err))
		job.SetStatus(StatusFailed, "rendering memo")
		return
	}

	pdfFile := ""
	if job.ExportPDF && w.pdf != nil {
		data, err := w.pdf.Export(ctx, html)
		if err != nil {
			log.Warn("pdf export failed", "error", err)
			job.AddError(fmt.Sprintf("pdf export: %s", err))
		} else if pdfFile, err = w.memos.SavePDF(memoFile, data); err != nil {
			log.Warn("pdf save failed", "error", err)
			job.AddError(fmt.Sprintf("save pdf: %s", err))
			pdfFile = ""
		}
	}

	job.SetResult(m.CompanyName, m.Verdict, memoFile, pdfFile)
	job.SetStatus(StatusCompleted, "done")
	log.Info("screening complete", "company", m.CompanyName, "verdict", m.Verdict, "memo", memoFile)
}

// complete calls Claude with retry on rate limits and transient errors.
func (w *Worker) complete(ctx context.Context, log *slog.Logger, maxTokens int, prompt string) (string, error) {
	var out string
	var lastErr error
	for attempt := range MaxRetries {
		out, lastErr = w.claude.Complete(ctx, maxTokens, prompt)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable llm error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, lastErr
}

// research gathers the three external lookups sequentially. Failures and
// missing credentials degrade to explanatory text rather than aborting.
func (w *Worker) research(ctx context.Context, log *slog.Logger, info screen.CompanyInfo) string {
	chReport := "Companies House API key not configured - skipping UK registry lookup."
	if w.registry != nil && w.registry.Enabled() {
		if r, err := w.registry.Report(ctx, info.CompanyName); err != nil {
			log.Warn("registry lookup failed", "error", err)
			chReport = fmt.Sprintf("Companies House lookup failed: %s", err)
		} else {
			chReport = r
		}
	}

	investorReport := "Perplexity API key not configured - skipping investor research."
	generalReport := "No research available - Perplexity API key not configured."
	if w.perplexity != nil && w.perplexity.Enabled() {
		if r, err := w.perplexity.InvestorReport(ctx, info.CompanyName, info.Industry); err != nil {
			log.Warn("investor research failed", "error", err)
			investorReport = fmt.Sprintf("Investor research failed: %s", err)
		} else {
			investorReport = r
		}
		if r, err := w.perplexity.GeneralReport(ctx, info.CompanyName, info.Industry, info.Product, info.Founders); err != nil {
			log.Warn("general research failed", "error", err)
			generalReport = fmt.Sprintf("Research failed: %s", err)
		} else {
			generalReport = r
		}
	}

	return fmt.Sprintf(`=== COMPANIES HOUSE (UK OFFICIAL REGISTRY) ===
%s

=== INVESTOR & FUNDING RESEARCH ===
%s

=== GENERAL COMPANY RESEARCH ===
%s`, chReport, investorReport, generalReport)
}
