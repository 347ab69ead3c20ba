package run

import "context"

// Repository lives outside the rebuild transaction: a failed run must still
// leave its failure record behind.
type Repository interface {
	Create(ctx context.Context, r *PipelineRun) error
	Save(ctx context.Context, r *PipelineRun) error
	GetByRunID(ctx context.Context, runID string) (*PipelineRun, error)
}
