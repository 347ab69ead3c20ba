package run

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("pipeline run not found")

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// PipelineRun records one invocation of the pipeline. A run either succeeds
// with every derived table rebuilt, or fails with nothing committed; the row
// counts below are only meaningful on succeeded runs.
type PipelineRun struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	RunID            string     `gorm:"size:32;column:run_id;uniqueIndex:ux_pipeline_runs_run_id"`
	Status           Status     `gorm:"size:16;column:status"`
	StagedLoans      int64      `gorm:"column:staged_loans"`
	StagedPayments   int64      `gorm:"column:staged_payments"`
	LoanDetails      int64      `gorm:"column:loan_details"`
	MonthlySummaries int64      `gorm:"column:monthly_summaries"`
	Error            string     `gorm:"type:text;column:error"`
	StartedAt        time.Time  `gorm:"column:started_at"`
	FinishedAt       *time.Time `gorm:"column:finished_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PipelineRun) TableName() string { return "pipeline_runs" }
