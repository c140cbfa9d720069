package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"judgebrief/internal/analysis"
	"judgebrief/internal/config"
	"judgebrief/internal/domain"
	"judgebrief/internal/export"
	"judgebrief/internal/port"
	"judgebrief/internal/report"
	"judgebrief/internal/search"
)

const (
	defaultMaxProcessAttempts = 3
	// MaxExportRows caps the analyses included in one export.
	MaxExportRows = 10000
	untitled      = "untitled"
)

// Analyzer runs the judgment pipeline over raw text.
type Analyzer interface {
	Run(ctx context.Context, raw string) analysis.Result
}

// AnalyzeInput is the DTO for synchronous analysis of already-extracted text.
type AnalyzeInput struct {
	Name string
	Text string
}

// UploadInput is the DTO for uploading a judgment file for queued analysis.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// SearchResult holds the matches of a query in an analysis' cleaned text.
type SearchResult struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Matches []search.Match `json:"matches"`
}

// AnalysisService defines the judgment analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error)
	Upload(ctx context.Context, input UploadInput) (*domain.Analysis, error)
	ProcessAnalysis(ctx context.Context, a *domain.Analysis, maxAttempts int)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	Search(ctx context.Context, id uuid.UUID, query string) (*SearchResult, error)
	RenderBrief(ctx context.Context, id uuid.UUID) (string, error)
	Export(ctx context.Context, w io.Writer, format string) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type analysisService struct {
	repo      port.AnalysisRepository
	storage   port.ObjectStorage
	extractor port.TextExtractor
	analyzer  Analyzer
	cfg       *config.S3Config
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	analyzer Analyzer,
	cfg *config.S3Config,
) AnalysisService {
	return &analysisService{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		analyzer:  analyzer,
		cfg:       cfg,
	}
}

// Analyze runs the pipeline over input.Text and persists the result. Text
// already analysed is not re-run; the stored analysis is returned instead,
// unless its summaries were degraded.
func (s *analysisService) Analyze(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error) {
	hash := analysis.Hash(input.Text)
	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrAnalysisNotFound) {
		return nil, fmt.Errorf("looking up analysis by hash: %w", err)
	}
	if err == nil && reusable(existing) {
		log.Printf("analysisService.Analyze: reusing analysis %s for hash %s", existing.ID, hash[:12])
		return existing, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = untitled
	}
	a := &domain.Analysis{
		ID:         uuid.New(),
		SourceName: name,
		FileType:   domain.FileTypeText,
		SizeBytes:  int64(len(input.Text)),
		Attempts:   1,
	}
	if err := complete(a, s.analyzer.Run(ctx, input.Text)); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating analysis: %w", err)
	}
	return a, nil
}

// reusable reports whether a stored analysis can stand in for a new one with
// the same content. Degraded summaries may have been a transient summarizer
// outage, so those documents are analysed again.
func reusable(a *domain.Analysis) bool {
	brief, err := a.DecodeBrief()
	if err != nil {
		log.Printf("analysisService: not reusing analysis %s: %v", a.ID, err)
		return false
	}
	return !brief.SummariesDegraded
}

// complete stores a pipeline result on a.
func complete(a *domain.Analysis, res analysis.Result) error {
	brief, err := json.Marshal(res.Brief)
	if err != nil {
		return fmt.Errorf("encoding brief: %w", err)
	}
	now := time.Now().UTC()
	a.ContentHash = res.Hash
	a.Brief = brief
	a.CleanedText = res.Cleaned
	a.Status = domain.AnalysisStatusCompleted
	a.Error = ""
	a.CompletedAt = &now
	return nil
}

func (s *analysisService) Upload(ctx context.Context, input UploadInput) (*domain.Analysis, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected, _, _ := strings.Cut(http.DetectContentType(buf[:n]), ";")
	if detectedType, ok := domain.AllowedContentTypes[detected]; !ok || detectedType != fileType {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	id := uuid.New()
	a := &domain.Analysis{
		ID:         id,
		SourceName: input.Header.Filename,
		FileType:   fileType,
		S3Bucket:   s.cfg.Bucket,
		S3Key:      fmt.Sprintf("judgments/%s/%s.%s", id, id, ext),
		SizeBytes:  input.Header.Size,
		Status:     domain.AnalysisStatusQueued,
	}

	log.Printf("analysisService.Upload: uploading %s (%s, %d bytes) as analysis %s",
		input.Header.Filename, detected, input.Header.Size, id)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.S3Bucket,
		Key:         a.S3Key,
		Body:        input.File,
		ContentType: detected,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("analysisService.Upload: S3 upload failed for analysis %s: %v", id, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.Create(ctx, a); err != nil {
		log.Printf("analysisService.Upload: failed to create analysis %s: %v", id, err)
		if delErr := s.storage.Delete(ctx, a.S3Bucket, a.S3Key); delErr != nil {
			log.Printf("analysisService.Upload: failed to remove orphaned object %s: %v", a.S3Key, delErr)
		}
		return nil, fmt.Errorf("creating analysis: %w", err)
	}
	return a, nil
}

// ProcessAnalysis downloads, extracts and analyses a claimed upload. It never
// returns an error: the outcome is recorded on the analysis row.
func (s *analysisService) ProcessAnalysis(ctx context.Context, a *domain.Analysis, maxAttempts int) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxProcessAttempts
	}

	data, err := s.storage.Download(ctx, a.S3Bucket, a.S3Key)
	if err != nil {
		s.handleProcessError(ctx, a, fmt.Errorf("downloading file: %w", err), maxAttempts)
		return
	}

	text := string(data)
	if a.FileType == domain.FileTypePDF {
		text, err = s.extractor.ExtractText(ctx, data)
		if err != nil {
			s.failProcessing(ctx, a, fmt.Sprintf("extracting text: %v", err))
			return
		}
	}

	if existing, err := s.repo.GetByHash(ctx, analysis.Hash(text)); err == nil && existing.ID != a.ID && reusable(existing) {
		now := time.Now().UTC()
		a.ContentHash = existing.ContentHash
		a.Brief = existing.Brief
		a.CleanedText = existing.CleanedText
		a.Status = domain.AnalysisStatusCompleted
		a.Error = ""
		a.CompletedAt = &now
		log.Printf("analysisService.ProcessAnalysis: analysis %s reuses brief of %s", a.ID, existing.ID)
	} else if err := complete(a, s.analyzer.Run(ctx, text)); err != nil {
		s.failProcessing(ctx, a, err.Error())
		return
	}

	if err := s.repo.UpdateResult(ctx, a); err != nil {
		log.Printf("analysisService.ProcessAnalysis: failed to save results for %s: %v", a.ID, err)
		return
	}
	log.Printf("analysisService.ProcessAnalysis: analysis %s completed", a.ID)
}

// handleProcessError queues the analysis for another attempt while attempts
// remain. Otherwise, marks it permanently failed.
func (s *analysisService) handleProcessError(ctx context.Context, a *domain.Analysis, procErr error, maxAttempts int) {
	if a.Attempts < maxAttempts {
		a.Status = domain.AnalysisStatusQueued
		a.Error = fmt.Sprintf("attempt %d failed, queued for retry: %v", a.Attempts, procErr)
		if err := s.repo.UpdateResult(ctx, a); err != nil {
			log.Printf("analysisService.handleProcessError: failed to queue analysis %s: %v", a.ID, err)
			return
		}
		log.Printf("analysisService.handleProcessError: analysis %s queued for retry (attempt %d/%d)", a.ID, a.Attempts, maxAttempts)
		return
	}
	s.failProcessing(ctx, a, procErr.Error())
}

func (s *analysisService) failProcessing(ctx context.Context, a *domain.Analysis, errMsg string) {
	log.Printf("analysisService.failProcessing: analysis %s failed: %s", a.ID, errMsg)
	a.Status = domain.AnalysisStatusFailed
	a.Error = errMsg
	if err := s.repo.UpdateResult(ctx, a); err != nil {
		log.Printf("analysisService.failProcessing: failed to update status for %s: %v", a.ID, err)
	}
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *analysisService) Search(ctx context.Context, id uuid.UUID, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.AnalysisStatusCompleted {
		return nil, domain.ErrAnalysisNotReady
	}
	matches := search.Find(a.CleanedText, query)
	return &SearchResult{
		Query:   query,
		Total:   search.Count(a.CleanedText, query),
		Matches: matches,
	}, nil
}

func (s *analysisService) RenderBrief(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	brief, err := a.DecodeBrief()
	if err != nil {
		return "", err
	}
	return report.RenderHTML(brief)
}

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

func (s *analysisService) Export(ctx context.Context, w io.Writer, format string) error {
	analyses, err := s.repo.ListCompleted(ctx, MaxExportRows)
	if err != nil {
		return fmt.Errorf("listing analyses for export: %w", err)
	}
	switch format {
	case FormatCSV:
		return export.WriteCSV(w, analyses)
	case FormatXLSX:
		return export.WriteXLSX(w, analyses)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if a.S3Key != "" {
		if err := s.storage.Delete(ctx, a.S3Bucket, a.S3Key); err != nil {
			log.Printf("analysisService.Delete: failed to remove object %s: %v", a.S3Key, err)
		}
	}
	return nil
}

func (s *analysisService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
