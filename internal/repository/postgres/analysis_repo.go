package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"judgebrief/internal/domain"
	"judgebrief/internal/port"
)

// listColumns omits cleaned_text, which list views never need.
const listColumns = `id, source_name, file_type, content_hash, s3_bucket, s3_key, size_bytes,
	status, error, attempts, brief, completed_at, created_at, updated_at`

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `INSERT INTO analyses (
		id, source_name, file_type, content_hash, s3_bucket, s3_key, size_bytes,
		status, error, attempts, brief, cleaned_text, completed_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13,
		$14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.SourceName, a.FileType, a.ContentHash, a.S3Bucket, a.S3Key, a.SizeBytes,
		a.Status, a.Error, a.Attempts, a.Brief, a.CleanedText, a.CompletedAt,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a, "SELECT * FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) GetByHash(ctx context.Context, hash string) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a,
		`SELECT * FROM analyses WHERE content_hash = $1 AND status = $2
		 AND NOT COALESCE((brief->>'summaries_degraded')::boolean, false)
		 ORDER BY completed_at DESC LIMIT 1`,
		hash, domain.AnalysisStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByHash: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM analyses"); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List count: %w", err)
	}

	var analyses []domain.Analysis
	err := r.db.SelectContext(ctx, &analyses,
		`SELECT `+listColumns+` FROM analyses
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
	}
	return analyses, total, nil
}

func (r *analysisRepo) ListCompleted(ctx context.Context, limit int) ([]domain.Analysis, error) {
	var analyses []domain.Analysis
	err := r.db.SelectContext(ctx, &analyses,
		`SELECT `+listColumns+` FROM analyses WHERE status = $1
		 ORDER BY completed_at DESC LIMIT $2`,
		domain.AnalysisStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ListCompleted: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepo) UpdateResult(ctx context.Context, a *domain.Analysis) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET
			status = $1, error = $2, attempts = $3, content_hash = $4,
			brief = $5, cleaned_text = $6, completed_at = $7, updated_at = $8
		 WHERE id = $9`,
		a.Status, a.Error, a.Attempts, a.ContentHash,
		a.Brief, a.CleanedText, a.CompletedAt, a.UpdatedAt,
		a.ID)
	if err != nil {
		return fmt.Errorf("analysisRepo.UpdateResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Analysis, error) {
	var analyses []domain.Analysis
	err := r.db.SelectContext(ctx, &analyses,
		`UPDATE analyses SET status = $1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM analyses WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.AnalysisStatusProcessing, domain.AnalysisStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ClaimQueued: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM analyses WHERE created_at < $1 AND status IN ($2, $3)",
		cutoff, domain.AnalysisStatusCompleted, domain.AnalysisStatusFailed)
	if err != nil {
		return 0, fmt.Errorf("analysisRepo.DeleteOlderThan: %w", err)
	}
	return result.RowsAffected()
}
