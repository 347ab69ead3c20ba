package staging

import "context"

// Repository persists staged tables. Replace* swaps the full table contents;
// staged tables are derived data and are rebuilt on every run.
type Repository interface {
	ReplaceLoans(ctx context.Context, rows []StagedLoan) error
	ReplacePayments(ctx context.Context, rows []StagedPayment) error
	ListLoans(ctx context.Context) ([]StagedLoan, error)
	ListPayments(ctx context.Context) ([]StagedPayment, error)
}
