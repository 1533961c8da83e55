package uow

import (
	"context"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/loan"
)

type Repos struct {
	Applications application.Repository
	Loans        loan.Repository
}

// UnitOfWork runs multi-repository work in one transaction. The submission
// commit (draft update + loan creation) is the only flow that needs it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinDraftTx locks the owner's status=draft row first, then passes it
	// in. Serializes concurrent submissions per owner.
	WithinDraftTx(ctx context.Context, ownerID string, fn func(r Repos, d *application.Draft) error) error
}
