package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"loan-analytics/internal/domain/mart"
	"loan-analytics/internal/domain/run"
	domainStaging "loan-analytics/internal/domain/staging"
	"loan-analytics/internal/domain/uow"
	"loan-analytics/internal/usecase/aggregate"
	"loan-analytics/internal/usecase/detail"
	stagingUC "loan-analytics/internal/usecase/staging"
	"loan-analytics/pkg/id"
)

// Invalidator drops cached mart reads after a successful rebuild.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	uow   uow.UnitOfWork
	runs  run.Repository
	mart  mart.Repository
	cache Invalidator
}

// NewUsecase: cache may be nil when no read cache is wired (tests).
func NewUsecase(tx uow.UnitOfWork, runs run.Repository, marts mart.Repository, cache Invalidator) *Usecase {
	return &Usecase{uow: tx, runs: runs, mart: marts, cache: cache}
}

// artifacts carries stage outputs down the graph within one run, so each
// stage consumes exactly what its dependency just materialized.
type artifacts struct {
	loans    []domainStaging.StagedLoan
	payments []domainStaging.StagedPayment
	details  []mart.LoanDetail
}

// Run rebuilds every derived table from the raw inputs inside a single
// transaction. The returned DTO is non-nil whenever a run record was
// written, including failed runs.
func (u *Usecase) Run(ctx context.Context) (*RunDTO, error) {
	order, err := TopoOrder(Stages)
	if err != nil {
		return nil, err
	}

	rec := &run.PipelineRun{
		RunID:     id.NewID32(),
		Status:    run.StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := u.runs.Create(ctx, rec); err != nil {
		return nil, err
	}

	buildErr := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var a artifacts
		for _, name := range order {
			if err := execStage(ctx, name, r, &a, rec); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})

	now := time.Now().UTC()
	rec.FinishedAt = &now
	if buildErr != nil {
		rec.Status = run.StatusFailed
		rec.Error = buildErr.Error()
	} else {
		rec.Status = run.StatusSucceeded
	}
	if err := u.runs.Save(ctx, rec); err != nil {
		log.Printf("pipeline: save run %s: %v", rec.RunID, err)
	}
	if buildErr == nil && u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			log.Printf("pipeline: invalidate summary cache: %v", err)
		}
	}
	return toDTO(rec), buildErr
}

func execStage(ctx context.Context, name string, r uow.Repos, a *artifacts, rec *run.PipelineRun) error {
	switch name {
	case StageLoans:
		raws, err := r.Source.ListLoans(ctx)
		if err != nil {
			return err
		}
		staged, err := stagingUC.NormalizeLoans(raws)
		if err != nil {
			return err
		}
		if err := r.Staging.ReplaceLoans(ctx, staged); err != nil {
			return err
		}
		a.loans = staged
		rec.StagedLoans = int64(len(staged))

	case StagePayments:
		raws, err := r.Source.ListPayments(ctx)
		if err != nil {
			return err
		}
		staged, err := stagingUC.NormalizePayments(raws)
		if err != nil {
			return err
		}
		if err := r.Staging.ReplacePayments(ctx, staged); err != nil {
			return err
		}
		a.payments = staged
		rec.StagedPayments = int64(len(staged))

	case StageLoanDetails:
		types, err := r.Source.ListLoanTypes(ctx)
		if err != nil {
			return err
		}
		a.details = detail.BuildLoanDetails(a.loans, types)
		if err := r.Mart.ReplaceLoanDetails(ctx, a.details); err != nil {
			return err
		}
		rec.LoanDetails = int64(len(a.details))

	case StageMonthly:
		rows := aggregate.SummarizeMonthly(a.details, a.payments)
		if err := r.Mart.ReplaceMonthlySummaries(ctx, rows); err != nil {
			return err
		}
		rec.MonthlySummaries = int64(len(rows))

	default:
		return fmt.Errorf("unknown stage %q", name)
	}
	return nil
}

func (u *Usecase) GetRun(ctx context.Context, runID string) (*RunDTO, error) {
	rec, err := u.runs.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return toDTO(rec), nil
}

// CheckGrain reconciles the current mart tables: per month, the aggregate's
// sum(new_loans) must match the detail table's distinct loan count.
func (u *Usecase) CheckGrain(ctx context.Context) (*GrainReport, error) {
	details, err := u.mart.ListLoanDetails(ctx, mart.LoanDetailFilter{})
	if err != nil {
		return nil, err
	}
	summaries, err := u.mart.ListMonthlySummaries(ctx, mart.SummaryFilter{})
	if err != nil {
		return nil, err
	}
	findings := aggregate.ReconcileGrain(details, summaries)
	return &GrainReport{OK: len(findings) == 0, Findings: findings}, nil
}
