package pipeline

import (
	"time"

	"loan-analytics/internal/domain/run"
	"loan-analytics/internal/usecase/aggregate"
)

type RunDTO struct {
	RunID            string     `json:"run_id"`
	Status           string     `json:"status"`
	StagedLoans      int64      `json:"staged_loans"`
	StagedPayments   int64      `json:"staged_payments"`
	LoanDetails      int64      `json:"loan_details"`
	MonthlySummaries int64      `json:"monthly_summaries"`
	Error            string     `json:"error,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
}

func toDTO(r *run.PipelineRun) *RunDTO {
	return &RunDTO{
		RunID:            r.RunID,
		Status:           string(r.Status),
		StagedLoans:      r.StagedLoans,
		StagedPayments:   r.StagedPayments,
		LoanDetails:      r.LoanDetails,
		MonthlySummaries: r.MonthlySummaries,
		Error:            r.Error,
		StartedAt:        r.StartedAt,
		FinishedAt:       r.FinishedAt,
	}
}

// GrainReport is the result of reconciling the aggregate grain against the
// loan-grain table.
type GrainReport struct {
	OK       bool                `json:"ok"`
	Findings []aggregate.Finding `json:"findings"`
}
