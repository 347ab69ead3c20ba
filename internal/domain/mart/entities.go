package mart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanDetail is the loan-grain fact table: exactly one row per staged loan,
// enriched with loan-type reference fields (null when the type is unknown)
// and two derived metrics. Per-customer queries are served from this table
// and never from the monthly aggregate.
type LoanDetail struct {
	ID                      uint64              `gorm:"primaryKey;column:id"`
	LoanID                  string              `gorm:"size:64;column:loan_id;uniqueIndex:ux_fct_loans_loan_id"`
	CustomerID              string              `gorm:"size:64;column:customer_id;index:idx_fct_loans_customer"`
	LoanTypeID              *int64              `gorm:"column:loan_type_id"`
	LoanTypeName            *string             `gorm:"size:64;column:loan_type_name"`
	LoanTypeDescription     *string             `gorm:"type:text;column:loan_type_description"`
	TypicalTermMonths       *int                `gorm:"column:typical_term_months"`
	LoanAmount              decimal.Decimal     `gorm:"type:decimal(18,2);column:loan_amount"`
	InterestRate            decimal.Decimal     `gorm:"type:decimal(8,4);column:interest_rate"`
	LoanStartDate           time.Time           `gorm:"type:date;column:loan_start_date;index:idx_fct_loans_start"`
	LoanTermMonths          int                 `gorm:"column:loan_term_months"`
	PropertyAddress         *string             `gorm:"type:text;column:property_address"`
	PropertyValue           decimal.NullDecimal `gorm:"type:decimal(18,2);column:property_value"`
	LTVRatio                decimal.NullDecimal `gorm:"type:decimal(10,2);column:ltv_ratio"`
	EstimatedMonthlyPayment decimal.Decimal     `gorm:"type:decimal(18,2);column:estimated_monthly_payment"`
}

func (LoanDetail) TableName() string { return "fct_loan_details" }

// MonthlySummary is the month × loan-type aggregate.
//
// Grain: (month, loan_type_name) from originations, plus at most one
// null-type row per month for payment-only activity. Origination measures
// are month × type; payment measures are month-grain and repeat on every
// type row of the same month. All numeric measures coalesce to zero on the
// side of the merge that had no activity, never to null.
type MonthlySummary struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	Month              time.Time       `gorm:"type:date;column:month;index:idx_agg_monthly_month"`
	LoanTypeName       *string         `gorm:"size:64;column:loan_type_name"`
	NewLoans           int64           `gorm:"column:new_loans"`
	AmountOriginated   decimal.Decimal `gorm:"type:decimal(18,2);column:amount_originated"`
	AvgLoanSize        decimal.Decimal `gorm:"type:decimal(18,2);column:avg_loan_size"`
	AvgRate            decimal.Decimal `gorm:"type:decimal(8,4);column:avg_rate"`
	PaymentsReceived   int64           `gorm:"column:payments_received"`
	PaymentVolume      decimal.Decimal `gorm:"type:decimal(18,2);column:payment_volume"`
	PrincipalCollected decimal.Decimal `gorm:"type:decimal(18,2);column:principal_collected"`
	InterestCollected  decimal.Decimal `gorm:"type:decimal(18,2);column:interest_collected"`
}

func (MonthlySummary) TableName() string { return "agg_monthly_loans" }
