package staging

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-analytics/internal/domain/source"
	domain "loan-analytics/internal/domain/staging"
)

// Normalization is a one-to-one row mapping: stable column names, dates cast
// to calendar date, amounts cast to decimal. No filtering, no deduplication.
// A value that does not parse aborts the stage: bad input is a data-quality
// error to surface, never to swallow.

// parseRawDate accepts a plain date or an RFC3339(-Nano) timestamp with an
// explicit timezone; the time-of-day is discarded. Naive local timestamps
// are rejected.
func parseRawDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return truncateToDate(t.UTC()), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return truncateToDate(t.UTC()), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseRawAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("non-numeric amount %q", raw)
	}
	return d, nil
}

// NormalizeLoans maps raw_loans to stg_loans, one output row per input row.
func NormalizeLoans(raws []source.RawLoan) ([]domain.StagedLoan, error) {
	out := make([]domain.StagedLoan, 0, len(raws))
	for _, r := range raws {
		amount, err := parseRawAmount(r.LoanAmount)
		if err != nil {
			return nil, fmt.Errorf("loan %s: loan_amount: %w", r.LoanID, err)
		}
		rate, err := parseRawAmount(r.InterestRate)
		if err != nil {
			return nil, fmt.Errorf("loan %s: interest_rate: %w", r.LoanID, err)
		}
		start, err := parseRawDate(r.LoanStartDate)
		if err != nil {
			return nil, fmt.Errorf("loan %s: loan_start_date: %w", r.LoanID, err)
		}

		var propValue decimal.NullDecimal
		if r.PropertyValue != nil {
			v, err := parseRawAmount(*r.PropertyValue)
			if err != nil {
				return nil, fmt.Errorf("loan %s: property_value: %w", r.LoanID, err)
			}
			propValue = decimal.NullDecimal{Decimal: v, Valid: true}
		}

		out = append(out, domain.StagedLoan{
			LoanID:          r.LoanID,
			CustomerID:      r.CustomerID,
			LoanTypeID:      r.LoanTypeID,
			LoanAmount:      amount,
			InterestRate:    rate,
			LoanStartDate:   start,
			LoanTermMonths:  r.LoanTermMonths,
			PropertyAddress: r.PropertyAddress,
			PropertyValue:   propValue,
		})
	}
	return out, nil
}

// NormalizePayments maps raw_loan_payments to stg_loan_payments.
func NormalizePayments(raws []source.RawPayment) ([]domain.StagedPayment, error) {
	out := make([]domain.StagedPayment, 0, len(raws))
	for _, r := range raws {
		date, err := parseRawDate(r.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("payment %s: payment_date: %w", r.PaymentID, err)
		}
		amount, err := parseRawAmount(r.PaymentAmount)
		if err != nil {
			return nil, fmt.Errorf("payment %s: payment_amount: %w", r.PaymentID, err)
		}
		principal, err := parseRawAmount(r.PrincipalPaid)
		if err != nil {
			return nil, fmt.Errorf("payment %s: principal_paid: %w", r.PaymentID, err)
		}
		interest, err := parseRawAmount(r.InterestPaid)
		if err != nil {
			return nil, fmt.Errorf("payment %s: interest_paid: %w", r.PaymentID, err)
		}

		out = append(out, domain.StagedPayment{
			PaymentID:     r.PaymentID,
			LoanID:        r.LoanID,
			PaymentDate:   date,
			PaymentAmount: amount,
			PrincipalPaid: principal,
			InterestPaid:  interest,
			PaymentStatus: r.PaymentStatus,
		})
	}
	return out, nil
}
