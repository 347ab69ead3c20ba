package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loan-analytics/internal/domain/mart"
	"loan-analytics/internal/infrastructure/cache"
)

const dateLayout = "2006-01-02"

type MartHandler struct {
	repo  mart.Repository
	cache *cache.SummaryCache // optional
}

func NewMartHandler(repo mart.Repository, c *cache.SummaryCache) *MartHandler {
	return &MartHandler{repo: repo, cache: c}
}

// ---- DTOs: decimals as fixed-point strings, dates as YYYY-MM-DD ----

type loanDetailDTO struct {
	LoanID                  string  `json:"loan_id"`
	CustomerID              string  `json:"customer_id"`
	LoanTypeID              *int64  `json:"loan_type_id"`
	LoanTypeName            *string `json:"loan_type_name"`
	LoanTypeDescription     *string `json:"loan_type_description"`
	TypicalTermMonths       *int    `json:"typical_term_months"`
	LoanAmount              string  `json:"loan_amount"`
	InterestRate            string  `json:"interest_rate"`
	LoanStartDate           string  `json:"loan_start_date"`
	LoanTermMonths          int     `json:"loan_term_months"`
	PropertyAddress         *string `json:"property_address"`
	PropertyValue           *string `json:"property_value"`
	LTVRatio                *string `json:"ltv_ratio"`
	EstimatedMonthlyPayment string  `json:"estimated_monthly_payment"`
}

type monthlySummaryDTO struct {
	Month              string  `json:"month"`
	LoanTypeName       *string `json:"loan_type_name"`
	NewLoans           int64   `json:"new_loans"`
	AmountOriginated   string  `json:"amount_originated"`
	AvgLoanSize        string  `json:"avg_loan_size"`
	AvgRate            string  `json:"avg_rate"`
	PaymentsReceived   int64   `json:"payments_received"`
	PaymentVolume      string  `json:"payment_volume"`
	PrincipalCollected string  `json:"principal_collected"`
	InterestCollected  string  `json:"interest_collected"`
}

func toLoanDetailDTO(d mart.LoanDetail) loanDetailDTO {
	dto := loanDetailDTO{
		LoanID:                  d.LoanID,
		CustomerID:              d.CustomerID,
		LoanTypeID:              d.LoanTypeID,
		LoanTypeName:            d.LoanTypeName,
		LoanTypeDescription:     d.LoanTypeDescription,
		TypicalTermMonths:       d.TypicalTermMonths,
		LoanAmount:              d.LoanAmount.StringFixed(2),
		InterestRate:            d.InterestRate.StringFixed(4),
		LoanStartDate:           d.LoanStartDate.Format(dateLayout),
		LoanTermMonths:          d.LoanTermMonths,
		PropertyAddress:         d.PropertyAddress,
		EstimatedMonthlyPayment: d.EstimatedMonthlyPayment.StringFixed(2),
	}
	if d.PropertyValue.Valid {
		s := d.PropertyValue.Decimal.StringFixed(2)
		dto.PropertyValue = &s
	}
	if d.LTVRatio.Valid {
		s := d.LTVRatio.Decimal.StringFixed(2)
		dto.LTVRatio = &s
	}
	return dto
}

func toMonthlySummaryDTO(s mart.MonthlySummary) monthlySummaryDTO {
	return monthlySummaryDTO{
		Month:              s.Month.Format(dateLayout),
		LoanTypeName:       s.LoanTypeName,
		NewLoans:           s.NewLoans,
		AmountOriginated:   s.AmountOriginated.StringFixed(2),
		AvgLoanSize:        s.AvgLoanSize.StringFixed(2),
		AvgRate:            s.AvgRate.StringFixed(4),
		PaymentsReceived:   s.PaymentsReceived,
		PaymentVolume:      s.PaymentVolume.StringFixed(2),
		PrincipalCollected: s.PrincipalCollected.StringFixed(2),
		InterestCollected:  s.InterestCollected.StringFixed(2),
	}
}

// ---- handlers ----

type listDetailsReq struct {
	LoanID string `query:"loan_id" validate:"omitempty,max=64"`
	Month  string `query:"month" validate:"omitempty,yearmonth"`
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=1000"`
}

func parseMonth(s string) *time.Time {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return nil
	}
	m := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &m
}

func (h *MartHandler) ListLoanDetails(c echo.Context) error {
	var req listDetailsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	f := mart.LoanDetailFilter{LoanID: req.LoanID, Limit: req.Limit}
	if f.Limit == 0 {
		f.Limit = 100
	}
	if req.Month != "" {
		f.Month = parseMonth(req.Month)
	}

	rows, err := h.repo.ListLoanDetails(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	out := make([]loanDetailDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLoanDetailDTO(r))
	}
	return c.JSON(http.StatusOK, out)
}

type listSummariesReq struct {
	Month string `query:"month" validate:"omitempty,yearmonth"`
}

func (h *MartHandler) ListMonthlySummaries(c echo.Context) error {
	var req listSummariesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	ctx := c.Request().Context()
	if h.cache != nil {
		if b, ok := h.cache.Get(ctx, req.Month); ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	f := mart.SummaryFilter{}
	if req.Month != "" {
		f.Month = parseMonth(req.Month)
	}
	rows, err := h.repo.ListMonthlySummaries(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	out := make([]monthlySummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toMonthlySummaryDTO(r))
	}

	if h.cache != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = h.cache.Set(ctx, req.Month, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}
