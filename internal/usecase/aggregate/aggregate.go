package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"loan-analytics/internal/domain/mart"
	domain "loan-analytics/internal/domain/staging"
)

// The aggregator builds agg_monthly_loans from two independently grouped
// inputs and nothing else. It deliberately has no access to per-loan rows at
// merge time, so an aggregate-to-detail fan-out join cannot be written here.
// The three historical failure modes this structure rules out:
//
//   - cross joins between the origination and payment sides (the merge is
//     keyed on month only, built from maps, no row multiplication possible)
//   - collapsing the loan-type dimension with a representative aggregate
//     (the type label is part of the group key, never derived)
//   - enriching month-grain rows with per-loan attributes (customer-level
//     detail lives in fct_loan_details, which this package never reads back)

// MonthStart truncates a date to the first of its month (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// originKey: the full grouping grain for originations. Every column that
// appears on an origination-side output row is part of this key.
type originKey struct {
	month    time.Time
	typeName string
	hasType  bool
}

type originGroup struct {
	loans   map[string]struct{} // distinct loan ids
	amount  decimal.Decimal
	rateSum decimal.Decimal
}

type paymentGroup struct {
	payments  map[string]struct{} // distinct payment ids
	volume    decimal.Decimal
	principal decimal.Decimal
	interest  decimal.Decimal
}

// SummarizeMonthly groups originations by (month, loan_type_name) and
// payments by month, then full-outer-merges the two sets on month.
//
// Payment measures are month-grain: in a month with several loan types they
// repeat on every type row. A month with payments but no originations gets a
// single row with a null type name and zeroed origination measures, and vice
// versa. Output is sorted month descending, then type name ascending with
// nulls last.
func SummarizeMonthly(details []mart.LoanDetail, payments []domain.StagedPayment) []mart.MonthlySummary {
	origins := make(map[originKey]*originGroup)
	for _, d := range details {
		k := originKey{month: MonthStart(d.LoanStartDate)}
		if d.LoanTypeName != nil {
			k.typeName = *d.LoanTypeName
			k.hasType = true
		}
		g := origins[k]
		if g == nil {
			g = &originGroup{loans: make(map[string]struct{})}
			origins[k] = g
		}
		if _, dup := g.loans[d.LoanID]; dup {
			// count-distinct semantics: a repeated loan id never inflates
			// counts or sums
			continue
		}
		g.loans[d.LoanID] = struct{}{}
		g.amount = g.amount.Add(d.LoanAmount)
		g.rateSum = g.rateSum.Add(d.InterestRate)
	}

	pays := make(map[time.Time]*paymentGroup)
	for _, p := range payments {
		m := MonthStart(p.PaymentDate)
		g := pays[m]
		if g == nil {
			g = &paymentGroup{payments: make(map[string]struct{})}
			pays[m] = g
		}
		if _, dup := g.payments[p.PaymentID]; dup {
			continue
		}
		g.payments[p.PaymentID] = struct{}{}
		g.volume = g.volume.Add(p.PaymentAmount)
		g.principal = g.principal.Add(p.PrincipalPaid)
		g.interest = g.interest.Add(p.InterestPaid)
	}

	monthsWithOrigins := make(map[time.Time]bool)
	out := make([]mart.MonthlySummary, 0, len(origins)+len(pays))
	for k, g := range origins {
		monthsWithOrigins[k.month] = true
		n := int64(len(g.loans))
		count := decimal.NewFromInt(n)
		row := mart.MonthlySummary{
			Month:            k.month,
			NewLoans:         n,
			AmountOriginated: g.amount.Round(2),
			AvgLoanSize:      g.amount.Div(count).Round(2),
			AvgRate:          g.rateSum.Div(count).Round(4),
		}
		if k.hasType {
			name := k.typeName
			row.LoanTypeName = &name
		}
		if p := pays[k.month]; p != nil {
			applyPayments(&row, p)
		}
		out = append(out, row)
	}
	for m, p := range pays {
		if monthsWithOrigins[m] {
			continue
		}
		// payment-only month: null type, origination side coalesced to zero
		row := mart.MonthlySummary{Month: m}
		applyPayments(&row, p)
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Month.Equal(b.Month) {
			return a.Month.After(b.Month)
		}
		an, bn := a.LoanTypeName, b.LoanTypeName
		if (an == nil) != (bn == nil) {
			return bn == nil // nulls last
		}
		if an == nil {
			return false
		}
		return *an < *bn
	})
	return out
}

func applyPayments(row *mart.MonthlySummary, p *paymentGroup) {
	row.PaymentsReceived = int64(len(p.payments))
	row.PaymentVolume = p.volume.Round(2)
	row.PrincipalCollected = p.principal.Round(2)
	row.InterestCollected = p.interest.Round(2)
}

// Finding is one month whose aggregate loan count disagrees with the
// loan-grain table.
type Finding struct {
	Month               time.Time `json:"month"`
	SummaryNewLoans     int64     `json:"summary_new_loans"`
	DetailDistinctLoans int64     `json:"detail_distinct_loans"`
}

// ReconcileGrain cross-checks sum(new_loans) per month in the aggregate
// against count(distinct loan_id) per start month at the detail grain. Any
// mismatch means a fan-out or loss slipped into the aggregate build.
func ReconcileGrain(details []mart.LoanDetail, summaries []mart.MonthlySummary) []Finding {
	detailLoans := make(map[time.Time]map[string]struct{})
	for _, d := range details {
		m := MonthStart(d.LoanStartDate)
		if detailLoans[m] == nil {
			detailLoans[m] = make(map[string]struct{})
		}
		detailLoans[m][d.LoanID] = struct{}{}
	}

	summaryCounts := make(map[time.Time]int64)
	for _, s := range summaries {
		summaryCounts[s.Month] += s.NewLoans
	}

	months := make(map[time.Time]bool)
	for m := range detailLoans {
		months[m] = true
	}
	for m := range summaryCounts {
		months[m] = true
	}

	var findings []Finding
	for m := range months {
		want := int64(len(detailLoans[m]))
		got := summaryCounts[m]
		if want != got {
			findings = append(findings, Finding{Month: m, SummaryNewLoans: got, DetailDistinctLoans: want})
		}
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Month.After(findings[j].Month) })
	return findings
}
