package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"judgebrief/internal/analysis"
	"judgebrief/internal/config"
	"judgebrief/internal/handler"
	"judgebrief/internal/job"
	"judgebrief/internal/pdftext"
	"judgebrief/internal/repository/postgres"
	"judgebrief/internal/router"
	"judgebrief/internal/service"
	s3storage "judgebrief/internal/storage/s3"
	"judgebrief/internal/summarizer"
	"judgebrief/internal/summarizer/providers"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize summarizer chain
	providers.Register()
	summ, err := summarizer.Shared(&cfg.Summarizer)
	if err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}

	// Initialize services
	pipeline := analysis.NewPipeline(summ, cfg.Cache)
	analysisSvc := service.NewAnalysisService(analysisRepo, s3Client, pdftext.NewExtractor(), pipeline, &cfg.S3)

	// Background work
	var bg sync.WaitGroup
	worker := service.NewAnalysisQueueWorker(analysisRepo, analysisSvc, service.AnalysisQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	bg.Add(1)
	go func() {
		defer bg.Done()
		worker.Start(ctx)
	}()

	if _, err := job.StartRetention(ctx, cfg.Retention, analysisSvc); err != nil {
		return fmt.Errorf("failed to start retention job: %w", err)
	}

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	searchH := handler.NewSearchHandler()
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, analysisH, searchH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		bg.Wait()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	bg.Wait()
	return nil
}
