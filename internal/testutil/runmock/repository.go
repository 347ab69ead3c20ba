package runmock

import (
	"context"
	"errors"

	"loan-analytics/internal/domain/run"
)

var _ run.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("runmock: method not implemented")

// Repo is a function-backed mock for run.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, r *run.PipelineRun) error
	SaveFn       func(ctx context.Context, r *run.PipelineRun) error
	GetByRunIDFn func(ctx context.Context, runID string) (*run.PipelineRun, error)
}

func (m *Repo) Create(ctx context.Context, r *run.PipelineRun) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *run.PipelineRun) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRunID(ctx context.Context, runID string) (*run.PipelineRun, error) {
	if m.GetByRunIDFn != nil {
		return m.GetByRunIDFn(ctx, runID)
	}
	return nil, errUnimplemented
}
