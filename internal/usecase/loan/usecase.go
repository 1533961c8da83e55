package loan

import (
	"context"
	"errors"
	"time"

	"loan-origination/internal/domain/loan"

	"gorm.io/gorm"
)

// RoleAdmin is the elevated role from the identity assertion; it bypasses
// the ownership checks on queries and payment updates.
const RoleAdmin = "admin"

type Usecase struct {
	repo loan.Repository
	now  func() time.Time
}

func NewUsecase(r loan.Repository) *Usecase {
	return &Usecase{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the caller's loans newest first; admins see every owner's.
func (u *Usecase) List(ctx context.Context, ownerID, role string) ([]loan.Loan, error) {
	if role == RoleAdmin {
		return u.repo.ListAll(ctx)
	}
	return u.repo.ListByOwnerID(ctx, ownerID)
}

// ListPending returns the caller's loans still awaiting review, newest first.
func (u *Usecase) ListPending(ctx context.Context, ownerID string) ([]loan.Loan, error) {
	return u.repo.ListByOwnerIDAndStatus(ctx, ownerID, loan.StatusPending)
}

// Get returns a single loan, enforcing the owner-or-admin policy.
func (u *Usecase) Get(ctx context.Context, ownerID, role, loanID string) (*loan.Loan, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if l.OwnerID != ownerID && role != RoleAdmin {
		return nil, loan.ErrForbidden
	}
	return l, nil
}

// UpdatePaymentStatus transitions one schedule entry, addressed by its
// 1-based installment sequence. Transitioning to paid stamps the payment
// date; any other target status clears it.
func (u *Usecase) UpdatePaymentStatus(ctx context.Context, ownerID, role, loanID string, seq int, status loan.PaymentStatus) (*loan.Loan, error) {
	if !loan.ValidPaymentStatus(status) {
		return nil, loan.ErrInvalidStatus
	}
	l, err := u.Get(ctx, ownerID, role, loanID)
	if err != nil {
		return nil, err
	}
	var entry *loan.ScheduleEntry
	for i := range l.Schedule {
		if l.Schedule[i].Seq == seq {
			entry = &l.Schedule[i]
			break
		}
	}
	if entry == nil {
		return nil, loan.ErrEntryNotFound
	}
	entry.Status = status
	if status == loan.PaymentPaid {
		paidAt := u.now()
		entry.PaymentDate = &paidAt
	} else {
		entry.PaymentDate = nil
	}
	if err := u.repo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return l, nil
}

// AddNote appends an audit note to a loan.
func (u *Usecase) AddNote(ctx context.Context, ownerID, role, loanID, content string) (*loan.Loan, error) {
	l, err := u.Get(ctx, ownerID, role, loanID)
	if err != nil {
		return nil, err
	}
	n := loan.Note{LoanRef: l.ID, Content: content, AuthorID: ownerID}
	if err := u.repo.AddNote(ctx, &n); err != nil {
		return nil, err
	}
	l.Notes = append(l.Notes, n)
	return l, nil
}
