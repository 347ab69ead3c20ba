package martmock

import (
	"context"
	"errors"

	"loan-analytics/internal/domain/mart"
)

var _ mart.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("martmock: method not implemented")

// Repo is a function-backed mock for mart.Repository.
type Repo struct {
	ReplaceLoanDetailsFn      func(ctx context.Context, rows []mart.LoanDetail) error
	ReplaceMonthlySummariesFn func(ctx context.Context, rows []mart.MonthlySummary) error
	ListLoanDetailsFn         func(ctx context.Context, f mart.LoanDetailFilter) ([]mart.LoanDetail, error)
	ListMonthlySummariesFn    func(ctx context.Context, f mart.SummaryFilter) ([]mart.MonthlySummary, error)
}

func (m *Repo) ReplaceLoanDetails(ctx context.Context, rows []mart.LoanDetail) error {
	if m.ReplaceLoanDetailsFn != nil {
		return m.ReplaceLoanDetailsFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ReplaceMonthlySummaries(ctx context.Context, rows []mart.MonthlySummary) error {
	if m.ReplaceMonthlySummariesFn != nil {
		return m.ReplaceMonthlySummariesFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ListLoanDetails(ctx context.Context, f mart.LoanDetailFilter) ([]mart.LoanDetail, error) {
	if m.ListLoanDetailsFn != nil {
		return m.ListLoanDetailsFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListMonthlySummaries(ctx context.Context, f mart.SummaryFilter) ([]mart.MonthlySummary, error) {
	if m.ListMonthlySummariesFn != nil {
		return m.ListMonthlySummariesFn(ctx, f)
	}
	return nil, errUnimplemented
}
