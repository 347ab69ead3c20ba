package mysql

import (
	"context"

	"gorm.io/gorm"

	"loan-analytics/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx binds all three repositories to one transaction; the pipeline
// rebuild commits whole or rolls back whole.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Source:  &SourceRepository{db: tx},
			Staging: &StagingRepository{db: tx},
			Mart:    &MartRepository{db: tx},
		}
		return fn(r)
	})
}
