package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	// GetByLoanID loads a loan with its schedule and notes.
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// ListByOwnerID returns the owner's loans, newest application first.
	ListByOwnerID(ctx context.Context, ownerID string) ([]Loan, error)
	// ListByOwnerIDAndStatus narrows ListByOwnerID to one loan status.
	ListByOwnerIDAndStatus(ctx context.Context, ownerID string, status Status) ([]Loan, error)
	// ListAll returns every loan, newest application first (elevated role).
	ListAll(ctx context.Context) ([]Loan, error)
	// SaveEntry persists a single schedule-entry mutation.
	SaveEntry(ctx context.Context, e *ScheduleEntry) error
	// AddNote appends an audit note.
	AddNote(ctx context.Context, n *Note) error
}
