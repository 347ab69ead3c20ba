package uow

import (
	"context"

	"loan-analytics/internal/domain/mart"
	"loan-analytics/internal/domain/source"
	"loan-analytics/internal/domain/staging"
)

type Repos struct {
	Source  source.Repository
	Staging staging.Repository
	Mart    mart.Repository
}

// UnitOfWork scopes a full pipeline rebuild to one transaction so partial
// results are never visible to readers.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
