package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	martDomain "loan-analytics/internal/domain/mart"
	runDomain "loan-analytics/internal/domain/run"
	sourceDomain "loan-analytics/internal/domain/source"
	stagingDomain "loan-analytics/internal/domain/staging"
)

// openTestDB creates an in-memory sqlite DB and migrates every table the
// repositories touch. The schema has no MySQL-only column types, so the
// domain models migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&sourceDomain.RawLoan{},
		&sourceDomain.RawPayment{},
		&sourceDomain.LoanType{},
		&stagingDomain.StagedLoan{},
		&stagingDomain.StagedPayment{},
		&martDomain.LoanDetail{},
		&martDomain.MonthlySummary{},
		&runDomain.PipelineRun{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeStagedLoan(loanID string) stagingDomain.StagedLoan {
	return stagingDomain.StagedLoan{
		LoanID:         loanID,
		CustomerID:     "CUST-1",
		LoanAmount:     decimal.NewFromInt(200_000),
		InterestRate:   decimal.NewFromFloat(0.06),
		LoanStartDate:  date(2024, time.March, 15),
		LoanTermMonths: 360,
	}
}

func TestStagingRepository_ReplaceLoans(t *testing.T) {
	db := openTestDB(t)
	repo := NewStagingRepository(db)
	ctx := context.Background()

	if err := repo.ReplaceLoans(ctx, []stagingDomain.StagedLoan{
		makeStagedLoan("LN-OLD-1"),
		makeStagedLoan("LN-OLD-2"),
	}); err != nil {
		t.Fatalf("first ReplaceLoans: %v", err)
	}

	// Second replace must fully supersede the first, not append to it.
	if err := repo.ReplaceLoans(ctx, []stagingDomain.StagedLoan{
		makeStagedLoan("LN-NEW-1"),
	}); err != nil {
		t.Fatalf("second ReplaceLoans: %v", err)
	}

	got, err := repo.ListLoans(ctx)
	if err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	if len(got) != 1 || got[0].LoanID != "LN-NEW-1" {
		t.Fatalf("expected only the rebuilt row, got %+v", got)
	}
}

func TestStagingRepository_ReplaceLoans_Empty(t *testing.T) {
	db := openTestDB(t)
	repo := NewStagingRepository(db)
	ctx := context.Background()

	if err := repo.ReplaceLoans(ctx, []stagingDomain.StagedLoan{makeStagedLoan("LN-1")}); err != nil {
		t.Fatalf("seed ReplaceLoans: %v", err)
	}
	if err := repo.ReplaceLoans(ctx, nil); err != nil {
		t.Fatalf("empty ReplaceLoans: %v", err)
	}

	got, err := repo.ListLoans(ctx)
	if err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty table after replacing with nothing, got %d rows", len(got))
	}
}

func TestStagingRepository_ReplacePayments(t *testing.T) {
	db := openTestDB(t)
	repo := NewStagingRepository(db)
	ctx := context.Background()

	rows := []stagingDomain.StagedPayment{
		{
			PaymentID:     "PMT-1",
			LoanID:        "LN-1",
			PaymentDate:   date(2024, time.April, 1),
			PaymentAmount: decimal.NewFromFloat(1199.10),
			PrincipalPaid: decimal.NewFromFloat(199.10),
			InterestPaid:  decimal.NewFromInt(1000),
			PaymentStatus: "completed",
		},
		{
			PaymentID:     "PMT-2",
			LoanID:        "LN-1",
			PaymentDate:   date(2024, time.May, 1),
			PaymentAmount: decimal.NewFromFloat(1199.10),
			PrincipalPaid: decimal.NewFromFloat(200.09),
			InterestPaid:  decimal.NewFromFloat(999.01),
			PaymentStatus: "completed",
		},
	}
	if err := repo.ReplacePayments(ctx, rows); err != nil {
		t.Fatalf("ReplacePayments: %v", err)
	}

	got, err := repo.ListPayments(ctx)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(got))
	}
	if got[0].PaymentID != "PMT-1" || got[1].PaymentID != "PMT-2" {
		t.Errorf("unexpected order: %+v", got)
	}
	if !got[0].PaymentAmount.Equal(decimal.NewFromFloat(1199.10)) {
		t.Errorf("payment amount round-trip: got %s", got[0].PaymentAmount)
	}
}
