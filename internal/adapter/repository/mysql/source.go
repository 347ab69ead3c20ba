package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "loan-analytics/internal/domain/source"
)

type SourceRepository struct{ db *gorm.DB }

func NewSourceRepository(db *gorm.DB) *SourceRepository { return &SourceRepository{db: db} }

func (r *SourceRepository) ListLoans(ctx context.Context) ([]domain.RawLoan, error) {
	var out []domain.RawLoan
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *SourceRepository) ListPayments(ctx context.Context) ([]domain.RawPayment, error) {
	var out []domain.RawPayment
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *SourceRepository) ListLoanTypes(ctx context.Context) ([]domain.LoanType, error) {
	var out []domain.LoanType
	err := r.db.WithContext(ctx).Order("loan_type_id").Find(&out).Error
	return out, err
}
