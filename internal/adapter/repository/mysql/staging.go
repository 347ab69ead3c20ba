package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "loan-analytics/internal/domain/staging"
)

const insertBatchSize = 500

type StagingRepository struct{ db *gorm.DB }

func NewStagingRepository(db *gorm.DB) *StagingRepository { return &StagingRepository{db: db} }

// replaceAll clears a derived table and bulk-inserts the rebuilt rows.
// Callers run this inside the pipeline transaction, so readers never see
// the empty intermediate state.
func replaceAll[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	var model T
	if err := db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error
}

func (r *StagingRepository) ReplaceLoans(ctx context.Context, rows []domain.StagedLoan) error {
	return replaceAll(ctx, r.db, rows)
}

func (r *StagingRepository) ReplacePayments(ctx context.Context, rows []domain.StagedPayment) error {
	return replaceAll(ctx, r.db, rows)
}

func (r *StagingRepository) ListLoans(ctx context.Context) ([]domain.StagedLoan, error) {
	var out []domain.StagedLoan
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *StagingRepository) ListPayments(ctx context.Context) ([]domain.StagedPayment, error) {
	var out []domain.StagedPayment
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}
