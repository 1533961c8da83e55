package uowmock

import (
	"context"
	"errors"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinDraftTxFn func(ctx context.Context, ownerID string, fn func(r uow.Repos, d *application.Draft) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinDraftTx(ctx context.Context, ownerID string, fn func(r uow.Repos, d *application.Draft) error) error {
	if m.WithinDraftTxFn != nil {
		return m.WithinDraftTxFn(ctx, ownerID, fn)
	}
	return errUnimplemented
}
