package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"judgebrief/internal/domain"
)

// AnalysisRepository defines the contract for analysis persistence.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	// GetByHash returns the most recent completed analysis with the given content
	// hash whose summaries were not degraded.
	GetByHash(ctx context.Context, hash string) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	ListCompleted(ctx context.Context, limit int) ([]domain.Analysis, error)
	UpdateResult(ctx context.Context, a *domain.Analysis) error
	// ClaimQueued atomically moves up to limit queued analyses to processing
	// and returns them. Concurrent callers never receive the same row.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
