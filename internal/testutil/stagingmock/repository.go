package stagingmock

import (
	"context"
	"errors"

	"loan-analytics/internal/domain/staging"
)

var _ staging.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("stagingmock: method not implemented")

// Repo is a function-backed mock for staging.Repository.
type Repo struct {
	ReplaceLoansFn    func(ctx context.Context, rows []staging.StagedLoan) error
	ReplacePaymentsFn func(ctx context.Context, rows []staging.StagedPayment) error
	ListLoansFn       func(ctx context.Context) ([]staging.StagedLoan, error)
	ListPaymentsFn    func(ctx context.Context) ([]staging.StagedPayment, error)
}

func (m *Repo) ReplaceLoans(ctx context.Context, rows []staging.StagedLoan) error {
	if m.ReplaceLoansFn != nil {
		return m.ReplaceLoansFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ReplacePayments(ctx context.Context, rows []staging.StagedPayment) error {
	if m.ReplacePaymentsFn != nil {
		return m.ReplacePaymentsFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ListLoans(ctx context.Context) ([]staging.StagedLoan, error) {
	if m.ListLoansFn != nil {
		return m.ListLoansFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListPayments(ctx context.Context) ([]staging.StagedPayment, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx)
	}
	return nil, errUnimplemented
}
