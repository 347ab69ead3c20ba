package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "loan-analytics/internal/domain/run"
)

type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func (r *RunRepository) Create(ctx context.Context, rec *domain.PipelineRun) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) Save(ctx context.Context, rec *domain.PipelineRun) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *RunRepository) GetByRunID(ctx context.Context, runID string) (*domain.PipelineRun, error) {
	var out domain.PipelineRun
	res := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}
