package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bramble-partners/screener/internal/config"
	"github.com/bramble-partners/screener/internal/llm"
	"github.com/bramble-partners/screener/internal/memostore"
	"github.com/bramble-partners/screener/internal/report"
	"github.com/bramble-partners/screener/internal/research"
	"github.com/bramble-partners/screener/internal/screen"
)

// Orchestrator manages the screening pipeline.
type Orchestrator struct {
	jobs       *JobStore
	queue      chan *Job
	claude     *llm.Client
	prompter   *screen.Prompter
	registry   *research.Registry
	perplexity *research.Perplexity
	memos      *memostore.Store
	pdf        *report.PDFExporter
	log        *slog.Logger
	cfg        config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, claude *llm.Client, registry *research.Registry, perplexity *research.Perplexity, memos *memostore.Store, pdf *report.PDFExporter, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		claude: claude,
		prompter: &screen.Prompter{
			Thesis:      cfg.Thesis,
			FitCriteria: cfg.FitCriteria,
		},
		registry:   registry,
		perplexity: perplexity,
		memos:      memos,
		pdf:        pdf,
		log:        log,
		cfg:        cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.claude, o.prompter, o.registry, o.perplexity, o.memos, o.pdf, o.log, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// MemoStore exposes the memo store for direct use by API handlers.
func (o *Orchestrator) MemoStore() *memostore.Store {
	return o.memos
}

// LLMStats exposes the Claude latency stats for the stats endpoint.
func (o *Orchestrator) LLMStats() *llm.Stats {
	return o.claude.Stats
}
