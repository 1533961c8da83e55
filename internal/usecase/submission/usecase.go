package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	domainLoan "loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/uow"
	"loan-origination/pkg/id"

	"gorm.io/gorm"
)

// ErrCommitFailed wraps a storage failure during the draft→loan commit.
// Both writes were rolled back; the whole submission is safe to retry.
var ErrCommitFailed = errors.New("submission commit failed")

type Usecase struct {
	uow     uow.UnitOfWork
	pricing domainLoan.PricingFunc
	now     func() time.Time
}

// NewUsecase wires the commit engine. pricing may be nil to take the fixed
// default policy; now may be nil to take wall-clock UTC.
func NewUsecase(tx uow.UnitOfWork, pricing domainLoan.PricingFunc, now func() time.Time) *Usecase {
	if pricing == nil {
		pricing = domainLoan.FixedRatePricing(domainLoan.DefaultInterestRate)
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{uow: tx, pricing: pricing, now: now}
}

type SubmitInput struct {
	LoanAmount  float64
	LoanType    string
	LoanPurpose string
	LoanTerm    int
}

type SubmitResult struct {
	LoanID         string  `json:"loan_id"`
	MonthlyPayment float64 `json:"monthly_payment"`
	Message        string  `json:"message"`
}

// Submit converts the owner's draft into a binding loan with its repayment
// schedule. The draft update and the loan creation commit together or not at
// all; a second call for the same owner fails because no draft remains.
func (u *Usecase) Submit(ctx context.Context, ownerID string, in SubmitInput) (*SubmitResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var res *SubmitResult
	err := u.uow.WithinDraftTx(ctx, ownerID, func(r uow.Repos, d *application.Draft) error {
		d.LoanDetails = application.LoanDetails{
			LoanType:    in.LoanType,
			LoanAmount:  in.LoanAmount,
			LoanTerm:    in.LoanTerm,
			LoanPurpose: in.LoanPurpose,
		}
		if err := validateDetails(d.LoanDetails); err != nil {
			return err
		}

		now := u.now()
		submittedAt := now
		d.Status = application.StatusSubmitted
		d.SubmittedAt = &submittedAt
		d.ActiveOwnerID = nil // frees the owner's single-draft slot
		d.UpdatedAt = now
		if err := r.Applications.Save(ctx, d); err != nil {
			return fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}

		rate, monthly := u.pricing(in.LoanAmount, in.LoanTerm)
		l := &domainLoan.Loan{
			LoanID:          id.NewID32(),
			OwnerID:         ownerID,
			ApplicationID:   d.ApplicationID,
			Principal:       in.LoanAmount,
			LoanType:        in.LoanType,
			Purpose:         in.LoanPurpose,
			InterestRate:    rate,
			TermMonths:      in.LoanTerm,
			MonthlyPayment:  monthly,
			DocumentRefs:    documentRefs(d.Documents),
			Status:          domainLoan.StatusPending,
			ApplicationDate: now,
			Schedule:        domainLoan.GenerateSchedule(in.LoanTerm, monthly, now),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}

		res = &SubmitResult{
			LoanID:         l.LoanID,
			MonthlyPayment: l.MonthlyPayment,
			Message:        "Application submitted successfully",
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNoDraft
		}
		return nil, err
	}
	return res, nil
}

// validateInput reports every missing field, not just the first.
func validateInput(in SubmitInput) error {
	ve := apperr.NewValidation()
	if in.LoanAmount == 0 {
		ve.Add("loan_amount", "is required")
	}
	if in.LoanType == "" {
		ve.Add("loan_type", "is required")
	}
	if in.LoanPurpose == "" {
		ve.Add("loan_purpose", "is required")
	}
	if in.LoanTerm == 0 {
		ve.Add("loan_term", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateDetails(d application.LoanDetails) error {
	ve := apperr.NewValidation()
	if d.LoanAmount <= 0 {
		ve.Add("loan_amount", "must be positive")
	}
	if d.LoanPurpose == "" {
		ve.Add("loan_purpose", "must not be empty")
	}
	if d.LoanTerm <= 0 {
		ve.Add("loan_term", "must be a positive number")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// documentRefs collects the non-empty references in a fixed order.
func documentRefs(docs application.Documents) []string {
	refs := make([]string, 0, 2)
	if docs.PhotoIDRef != "" {
		refs = append(refs, docs.PhotoIDRef)
	}
	if docs.IncomeProofRef != "" {
		refs = append(refs, docs.IncomeProofRef)
	}
	return refs
}
