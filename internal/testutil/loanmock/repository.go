package loanmock

import (
	"context"

	domain "loan-origination/internal/domain/loan"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByOwnerIDFn          func(ctx context.Context, ownerID string) ([]domain.Loan, error)
	ListByOwnerIDAndStatusFn func(ctx context.Context, ownerID string, status domain.Status) ([]domain.Loan, error)
	ListAllFn                func(ctx context.Context) ([]domain.Loan, error)
	SaveEntryFn              func(ctx context.Context, e *domain.ScheduleEntry) error
	AddNoteFn                func(ctx context.Context, n *domain.Note) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Loan, error) {
	if m.ListByOwnerIDFn != nil {
		return m.ListByOwnerIDFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListByOwnerIDAndStatus(ctx context.Context, ownerID string, status domain.Status) ([]domain.Loan, error) {
	if m.ListByOwnerIDAndStatusFn != nil {
		return m.ListByOwnerIDAndStatusFn(ctx, ownerID, status)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) SaveEntry(ctx context.Context, e *domain.ScheduleEntry) error {
	if m.SaveEntryFn != nil {
		return m.SaveEntryFn(ctx, e)
	}
	return nil
}

func (m *Repo) AddNote(ctx context.Context, n *domain.Note) error {
	if m.AddNoteFn != nil {
		return m.AddNoteFn(ctx, n)
	}
	return nil
}
