package sourcemock

import (
	"context"
	"errors"

	"loan-analytics/internal/domain/source"
)

var _ source.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("sourcemock: method not implemented")

// Repo is a function-backed mock for source.Repository. Fill in the
// function fields a test needs; unfilled ones return errUnimplemented.
type Repo struct {
	ListLoansFn     func(ctx context.Context) ([]source.RawLoan, error)
	ListPaymentsFn  func(ctx context.Context) ([]source.RawPayment, error)
	ListLoanTypesFn func(ctx context.Context) ([]source.LoanType, error)
}

func (m *Repo) ListLoans(ctx context.Context) ([]source.RawLoan, error) {
	if m.ListLoansFn != nil {
		return m.ListLoansFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListPayments(ctx context.Context) ([]source.RawPayment, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListLoanTypes(ctx context.Context) ([]source.LoanType, error) {
	if m.ListLoanTypesFn != nil {
		return m.ListLoanTypesFn(ctx)
	}
	return nil, errUnimplemented
}
