package source

import "time"

// Raw tables are loaded by an external ingestion job. Their schema is a frozen
// contract: dates and monetary amounts arrive as strings and are only parsed
// during staging, where a bad value fails the run instead of being nulled out.

type RawLoan struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	LoanID          string    `gorm:"size:64;column:loan_id;uniqueIndex:ux_raw_loans_loan_id"`
	CustomerID      string    `gorm:"size:64;column:customer_id;index:idx_raw_loans_customer"`
	LoanTypeID      *int64    `gorm:"column:loan_type_id"`
	LoanAmount      string    `gorm:"size:32;column:loan_amount"`
	InterestRate    string    `gorm:"size:32;column:interest_rate"`
	LoanStartDate   string    `gorm:"size:64;column:loan_start_date"`
	LoanTermMonths  int       `gorm:"column:loan_term_months"`
	PropertyAddress *string   `gorm:"type:text;column:property_address"`
	PropertyValue   *string   `gorm:"size:32;column:property_value"`
	LoadedAt        time.Time `gorm:"column:loaded_at;autoCreateTime"`
}

func (RawLoan) TableName() string { return "raw_loans" }

type RawPayment struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	PaymentID     string    `gorm:"size:64;column:payment_id;uniqueIndex:ux_raw_payments_payment_id"`
	LoanID        string    `gorm:"size:64;column:loan_id;index:idx_raw_payments_loan"`
	PaymentDate   string    `gorm:"size:64;column:payment_date"`
	PaymentAmount string    `gorm:"size:32;column:payment_amount"`
	PrincipalPaid string    `gorm:"size:32;column:principal_paid"`
	InterestPaid  string    `gorm:"size:32;column:interest_paid"`
	PaymentStatus string    `gorm:"size:32;column:payment_status"`
	LoadedAt      time.Time `gorm:"column:loaded_at;autoCreateTime"`
}

func (RawPayment) TableName() string { return "raw_loan_payments" }

// LoanType is static reference data, keyed by the business id.
type LoanType struct {
	LoanTypeID        int64  `gorm:"primaryKey;column:loan_type_id"`
	LoanTypeName      string `gorm:"size:64;column:loan_type_name"`
	Description       string `gorm:"type:text;column:description"`
	TypicalTermMonths int    `gorm:"column:typical_term_months"`
}

func (LoanType) TableName() string { return "loan_types" }
