package staging

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staged tables mirror the raw tables one-to-one with typed columns and
// stable names. Dates are truncated to calendar date (UTC midnight).

type StagedLoan struct {
	ID              uint64              `gorm:"primaryKey;column:id"`
	LoanID          string              `gorm:"size:64;column:loan_id;uniqueIndex:ux_stg_loans_loan_id"`
	CustomerID      string              `gorm:"size:64;column:customer_id"`
	LoanTypeID      *int64              `gorm:"column:loan_type_id"`
	LoanAmount      decimal.Decimal     `gorm:"type:decimal(18,2);column:loan_amount"`
	InterestRate    decimal.Decimal     `gorm:"type:decimal(8,4);column:interest_rate"`
	LoanStartDate   time.Time           `gorm:"type:date;column:loan_start_date;index:idx_stg_loans_start"`
	LoanTermMonths  int                 `gorm:"column:loan_term_months"`
	PropertyAddress *string             `gorm:"type:text;column:property_address"`
	PropertyValue   decimal.NullDecimal `gorm:"type:decimal(18,2);column:property_value"`
}

func (StagedLoan) TableName() string { return "stg_loans" }

type StagedPayment struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	PaymentID     string          `gorm:"size:64;column:payment_id;uniqueIndex:ux_stg_payments_payment_id"`
	LoanID        string          `gorm:"size:64;column:loan_id;index:idx_stg_payments_loan"`
	PaymentDate   time.Time       `gorm:"type:date;column:payment_date;index:idx_stg_payments_date"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(18,2);column:payment_amount"`
	PrincipalPaid decimal.Decimal `gorm:"type:decimal(18,2);column:principal_paid"`
	InterestPaid  decimal.Decimal `gorm:"type:decimal(18,2);column:interest_paid"`
	PaymentStatus string          `gorm:"size:32;column:payment_status"`
}

func (StagedPayment) TableName() string { return "stg_loan_payments" }
