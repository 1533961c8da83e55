package mysql

import (
	"context"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Applications: &ApplicationRepository{db: tx},
			Loans:        &LoanRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinDraftTx(ctx context.Context, ownerID string, fn func(r uow.Repos, d *application.Draft) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Applications: &ApplicationRepository{db: tx},
			Loans:        &LoanRepository{db: tx},
		}
		// lock the draft row up-front to prevent races
		d, err := r.Applications.GetDraftByOwnerIDForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		return fn(r, d)
	})
}
