package applicationmock

import (
	"context"

	domain "loan-origination/internal/domain/application"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies application.Repository.
// Fill in the function fields a test needs; unfilled getters report
// record-not-found, unfilled writers succeed.
type Repo struct {
	CreateFn                     func(ctx context.Context, d *domain.Draft) error
	SaveFn                       func(ctx context.Context, d *domain.Draft) error
	GetDraftByOwnerIDFn          func(ctx context.Context, ownerID string) (*domain.Draft, error)
	GetDraftByOwnerIDForUpdateFn func(ctx context.Context, ownerID string) (*domain.Draft, error)
	ListByOwnerIDFn              func(ctx context.Context, ownerID string) ([]domain.Draft, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Draft) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Draft) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetDraftByOwnerID(ctx context.Context, ownerID string) (*domain.Draft, error) {
	if m.GetDraftByOwnerIDFn != nil {
		return m.GetDraftByOwnerIDFn(ctx, ownerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetDraftByOwnerIDForUpdate(ctx context.Context, ownerID string) (*domain.Draft, error) {
	if m.GetDraftByOwnerIDForUpdateFn != nil {
		return m.GetDraftByOwnerIDForUpdateFn(ctx, ownerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Draft, error) {
	if m.ListByOwnerIDFn != nil {
		return m.ListByOwnerIDFn(ctx, ownerID)
	}
	return nil, nil
}
