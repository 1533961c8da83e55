package application

import (
	"context"
	"errors"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/uow"
	"loan-origination/pkg/id"

	"gorm.io/gorm"
)

// Usecase drives the four-step draft lifecycle. Step 1 upserts the draft;
// steps 2-4 require one to exist already. Steps 2-4 are not ordered among
// themselves. Every mutation re-reads the draft under a row lock inside one
// transaction, so concurrent step calls for the same owner serialize instead
// of overwriting each other's sections.
type Usecase struct {
	repo application.Repository
	tx   uow.UnitOfWork
}

func NewUsecase(r application.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, tx: tx}
}

// SavePersonalInfo creates the owner's draft if none exists, otherwise
// overwrites the personal-info section. The locked read and the create share
// one transaction; the unique active-owner index rejects a second draft that
// slips past the lock.
func (u *Usecase) SavePersonalInfo(ctx context.Context, ownerID string, in application.PersonalInfo) (*application.Draft, error) {
	var out *application.Draft
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Applications.GetDraftByOwnerIDForUpdate(ctx, ownerID)
		switch {
		case err == nil:
			d.PersonalInfo = in
			d.UpdatedAt = time.Now().UTC()
			if err := r.Applications.Save(ctx, d); err != nil {
				return err
			}
			out = d
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			active := ownerID
			d = &application.Draft{
				ApplicationID: id.NewID32(),
				OwnerID:       ownerID,
				ActiveOwnerID: &active,
				PersonalInfo:  in,
				Status:        application.StatusDraft,
			}
			if err := r.Applications.Create(ctx, d); err != nil {
				return err
			}
			out = d
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveLoanDetails overwrites the loan-details section of an existing draft.
func (u *Usecase) SaveLoanDetails(ctx context.Context, ownerID string, in application.LoanDetails) (*application.Draft, error) {
	return u.updateDraft(ctx, ownerID, func(d *application.Draft) error {
		d.LoanDetails = in
		return nil
	})
}

// SaveFinancialInfo overwrites the financial-info section of an existing draft.
func (u *Usecase) SaveFinancialInfo(ctx context.Context, ownerID string, in application.FinancialInfo) (*application.Draft, error) {
	return u.updateDraft(ctx, ownerID, func(d *application.Draft) error {
		d.FinancialInfo = in
		return nil
	})
}

// DocumentsInput distinguishes absent refs from empty ones so the merge
// never clobbers a previously uploaded reference.
type DocumentsInput struct {
	PhotoIDRef       *string
	IncomeProofRef   *string
	IdentityVerified bool
	IncomeVerified   bool
	TermsAccepted    bool
}

// SaveDocuments merges document references and attestations into the draft.
// At least one reference must be supplied and all three attestations must be
// affirmed.
func (u *Usecase) SaveDocuments(ctx context.Context, ownerID string, in DocumentsInput) (*application.Draft, error) {
	return u.updateDraft(ctx, ownerID, func(d *application.Draft) error {
		if err := validateDocuments(in); err != nil {
			return err
		}
		if in.PhotoIDRef != nil {
			d.Documents.PhotoIDRef = *in.PhotoIDRef
		}
		if in.IncomeProofRef != nil {
			d.Documents.IncomeProofRef = *in.IncomeProofRef
		}
		d.Documents.IdentityVerified = in.IdentityVerified
		d.Documents.IncomeVerified = in.IncomeVerified
		d.Documents.TermsAccepted = in.TermsAccepted
		return nil
	})
}

// ListApplications returns all of the owner's applications, newest first.
func (u *Usecase) ListApplications(ctx context.Context, ownerID string) ([]application.Draft, error) {
	return u.repo.ListByOwnerID(ctx, ownerID)
}

// updateDraft applies mutate to the owner's locked draft and saves it, all in
// one transaction. A missing draft surfaces as ErrNoDraft.
func (u *Usecase) updateDraft(ctx context.Context, ownerID string, mutate func(d *application.Draft) error) (*application.Draft, error) {
	var out *application.Draft
	err := u.tx.WithinDraftTx(ctx, ownerID, func(r uow.Repos, d *application.Draft) error {
		if err := mutate(d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNoDraft
		}
		return nil, err
	}
	return out, nil
}

func validateDocuments(in DocumentsInput) error {
	ve := apperr.NewValidation()
	hasPhoto := in.PhotoIDRef != nil && *in.PhotoIDRef != ""
	hasIncome := in.IncomeProofRef != nil && *in.IncomeProofRef != ""
	if !hasPhoto && !hasIncome {
		ve.Add("documents", "at least one document must be uploaded")
	}
	if !in.IdentityVerified {
		ve.Add("identity_verified", "must be confirmed")
	}
	if !in.IncomeVerified {
		ve.Add("income_verified", "must be confirmed")
	}
	if !in.TermsAccepted {
		ve.Add("terms_accepted", "must be confirmed")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
