package mart

import (
	"context"
	"time"
)

type LoanDetailFilter struct {
	LoanID string
	// Month restricts to loans started within the given month.
	Month *time.Time
	Limit int
}

type SummaryFilter struct {
	Month *time.Time
	Limit int
}

// Repository persists the mart tables. Replace* swaps full table contents
// (full rebuild per run); List* returns rows in the published sort order,
// month descending then type name ascending with nulls last.
type Repository interface {
	ReplaceLoanDetails(ctx context.Context, rows []LoanDetail) error
	ReplaceMonthlySummaries(ctx context.Context, rows []MonthlySummary) error
	ListLoanDetails(ctx context.Context, f LoanDetailFilter) ([]LoanDetail, error)
	ListMonthlySummaries(ctx context.Context, f SummaryFilter) ([]MonthlySummary, error)
}
