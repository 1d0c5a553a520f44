package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"interpreter/internal/domain/entity"
	"interpreter/internal/domain/repository"
)

type HistoryUsecase interface {
	// Record writes an audit entry, best-effort: failures are logged
	// and never reach the request path.
	Record(rec *entity.ExplanationRecord)
	Get(ctx context.Context, id string) (*entity.ExplanationRecord, error)
	List(ctx context.Context, limit int64) ([]*entity.ExplanationRecord, error)
	Delete(ctx context.Context, id string) error
	Enabled() bool
}

var _ HistoryUsecase = (*HistoryService)(nil)

type HistoryService struct {
	repo   repository.HistoryRepository
	logger *slog.Logger
}

// NewHistoryService wraps the audit store. A nil repo disables history:
// Record becomes a no-op and reads report nothing.
func NewHistoryService(repo repository.HistoryRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

func (s *HistoryService) Enabled() bool {
	return s.repo != nil
}

func (s *HistoryService) Record(rec *entity.ExplanationRecord) {
	if s.repo == nil {
		return
	}
	// Own timeout: the request context may already be done by the time
	// the record is written.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Save(ctx, rec); err != nil {
		s.logger.Warn("save explanation record failed", "id", rec.ID, "err", err)
	}
}

func (s *HistoryService) Get(ctx context.Context, id string) (*entity.ExplanationRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

func (s *HistoryService) List(ctx context.Context, limit int64) ([]*entity.ExplanationRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return fmt.Errorf("history store is not configured")
	}
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}
