package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "loan-analytics/internal/domain/mart"
)

type MartRepository struct{ db *gorm.DB }

func NewMartRepository(db *gorm.DB) *MartRepository { return &MartRepository{db: db} }

func (r *MartRepository) ReplaceLoanDetails(ctx context.Context, rows []domain.LoanDetail) error {
	return replaceAll(ctx, r.db, rows)
}

func (r *MartRepository) ReplaceMonthlySummaries(ctx context.Context, rows []domain.MonthlySummary) error {
	return replaceAll(ctx, r.db, rows)
}

func (r *MartRepository) ListLoanDetails(ctx context.Context, f domain.LoanDetailFilter) ([]domain.LoanDetail, error) {
	q := r.db.WithContext(ctx).Order("loan_start_date DESC, loan_id ASC")
	if f.LoanID != "" {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	if f.Month != nil {
		q = q.Where("loan_start_date >= ? AND loan_start_date < ?", *f.Month, f.Month.AddDate(0, 1, 0))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []domain.LoanDetail
	err := q.Find(&out).Error
	return out, err
}

func (r *MartRepository) ListMonthlySummaries(ctx context.Context, f domain.SummaryFilter) ([]domain.MonthlySummary, error) {
	// month descending, then type name ascending with nulls last
	q := r.db.WithContext(ctx).Order("month DESC, loan_type_name IS NULL, loan_type_name ASC")
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []domain.MonthlySummary
	err := q.Find(&out).Error
	return out, err
}
