package source

import "context"

// Repository reads the warehouse-loaded inputs. The pipeline never writes
// these tables; seeding is the loader's job.
type Repository interface {
	ListLoans(ctx context.Context) ([]RawLoan, error)
	ListPayments(ctx context.Context) ([]RawPayment, error)
	ListLoanTypes(ctx context.Context) ([]LoanType, error)
}
