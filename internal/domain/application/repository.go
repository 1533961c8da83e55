package application

import "context"

type Repository interface {
	Create(ctx context.Context, d *Draft) error
	Save(ctx context.Context, d *Draft) error
	// GetDraftByOwnerID returns the owner's single status=draft row.
	GetDraftByOwnerID(ctx context.Context, ownerID string) (*Draft, error)
	// GetDraftByOwnerIDForUpdate is the locked variant used inside the
	// submission transaction.
	GetDraftByOwnerIDForUpdate(ctx context.Context, ownerID string) (*Draft, error)
	// ListByOwnerID returns every application (draft and submitted) for the
	// owner, most recently updated first.
	ListByOwnerID(ctx context.Context, ownerID string) ([]Draft, error)
}
