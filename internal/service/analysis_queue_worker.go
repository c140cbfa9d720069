package service

import (
	"context"
	"log"
	"sync"
	"time"

	"judgebrief/internal/port"
)

// AnalysisQueueConfig holds settings for the analysis queue worker.
type AnalysisQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
	// ProcessTimeout bounds a single analysis, including download and summarization.
	ProcessTimeout time.Duration
}

// AnalysisQueueWorker polls for queued uploads and dispatches them for analysis.
type AnalysisQueueWorker struct {
	repo    port.AnalysisRepository
	service AnalysisService
	cfg     AnalysisQueueConfig
	wg      sync.WaitGroup
}

// NewAnalysisQueueWorker creates a new AnalysisQueueWorker.
func NewAnalysisQueueWorker(repo port.AnalysisRepository, service AnalysisService, cfg AnalysisQueueConfig) *AnalysisQueueWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = 5 * time.Minute
	}
	return &AnalysisQueueWorker{
		repo:    repo,
		service: service,
		cfg:     cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight analyses have finished.
func (w *AnalysisQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("analysisQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("analysisQueueWorker: shutting down, waiting for in-flight analyses...")
			w.wg.Wait()
			log.Printf("analysisQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			claimed, err := w.repo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("analysisQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range claimed {
				a := claimed[i]
				a.Attempts++

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// In-flight analyses run to completion during shutdown.
					procCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ProcessTimeout)
					defer cancel()

					log.Printf("analysisQueueWorker: dispatching analysis %s (attempt %d)", a.ID, a.Attempts)
					w.service.ProcessAnalysis(procCtx, &a, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
