package detail

import (
	"github.com/shopspring/decimal"

	"loan-analytics/internal/domain/mart"
	"loan-analytics/internal/domain/source"
	domain "loan-analytics/internal/domain/staging"
)

var (
	hundred       = decimal.NewFromInt(100)
	twelveHundred = decimal.NewFromInt(1200)
	one           = decimal.NewFromInt(1)
)

// RoundMoney rounds to 2 decimal places, half away from zero.
// Every monetary figure published by the marts goes through this.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// LTVRatio is loan_amount / property_value × 100 at 2 decimal places.
// Guarded: null unless property_value is strictly positive.
func LTVRatio(loanAmount decimal.Decimal, propertyValue decimal.NullDecimal) decimal.NullDecimal {
	if !propertyValue.Valid || !propertyValue.Decimal.IsPositive() {
		return decimal.NullDecimal{}
	}
	ratio := loanAmount.Div(propertyValue.Decimal).Mul(hundred)
	return decimal.NullDecimal{Decimal: RoundMoney(ratio), Valid: true}
}

// MonthlyPayment is the standard fixed-rate amortization
// P·r·(1+r)^n / ((1+r)^n − 1), with r the monthly rate from an annual
// percentage. The formula is undefined at r = 0, so zero-interest loans fall
// back to a flat amount/term split. Non-positive terms yield zero.
func MonthlyPayment(loanAmount, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePct.IsZero() {
		return RoundMoney(loanAmount.Div(n))
	}
	r := annualRatePct.Div(twelveHundred)
	pow := one.Add(r).Pow(n)
	payment := loanAmount.Mul(r).Mul(pow).Div(pow.Sub(one))
	return RoundMoney(payment)
}

// BuildLoanDetails left-joins staged loans to the loan-type reference and
// computes the derived metrics. One output row per loan: a missing or null
// loan_type_id yields null type fields, never a dropped row.
func BuildLoanDetails(loans []domain.StagedLoan, types []source.LoanType) []mart.LoanDetail {
	byID := make(map[int64]source.LoanType, len(types))
	for _, t := range types {
		byID[t.LoanTypeID] = t
	}

	out := make([]mart.LoanDetail, 0, len(loans))
	for _, l := range loans {
		d := mart.LoanDetail{
			LoanID:                  l.LoanID,
			CustomerID:              l.CustomerID,
			LoanTypeID:              l.LoanTypeID,
			LoanAmount:              l.LoanAmount,
			InterestRate:            l.InterestRate,
			LoanStartDate:           l.LoanStartDate,
			LoanTermMonths:          l.LoanTermMonths,
			PropertyAddress:         l.PropertyAddress,
			PropertyValue:           l.PropertyValue,
			LTVRatio:                LTVRatio(l.LoanAmount, l.PropertyValue),
			EstimatedMonthlyPayment: MonthlyPayment(l.LoanAmount, l.InterestRate, l.LoanTermMonths),
		}
		if l.LoanTypeID != nil {
			if t, ok := byID[*l.LoanTypeID]; ok {
				name, desc, term := t.LoanTypeName, t.Description, t.TypicalTermMonths
				d.LoanTypeName = &name
				d.LoanTypeDescription = &desc
				d.TypicalTermMonths = &term
			}
		}
		out = append(out, d)
	}
	return out
}
