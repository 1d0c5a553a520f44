package repository

import (
	"context"
	"errors"

	"interpreter/internal/domain/entity"
)

// ErrRecordNotFound is returned by Delete when no record has the given
// id, so callers never see storage-driver error types.
var ErrRecordNotFound = errors.New("explanation record not found")

// HistoryRepository определяет интерфейс доступа к хранилищу записей
// аудита (ExplanationRecord).
type HistoryRepository interface {
	Save(ctx context.Context, rec *entity.ExplanationRecord) error
	GetByID(ctx context.Context, id string) (*entity.ExplanationRecord, error)
	List(ctx context.Context, limit int64) ([]*entity.ExplanationRecord, error)
	Delete(ctx context.Context, id string) error
}
