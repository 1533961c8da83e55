package submission

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	domainLoan "loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/uow"
	"loan-origination/internal/testutil/applicationmock"
	"loan-origination/internal/testutil/loanmock"
	"loan-origination/internal/testutil/uowmock"

	"gorm.io/gorm"
)

const ownerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

var fixedNow = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func draftWithDocs() *application.Draft {
	active := ownerID
	return &application.Draft{
		ApplicationID: strings.Repeat("a", 32),
		OwnerID:       ownerID,
		ActiveOwnerID: &active,
		Status:        application.StatusDraft,
		Documents: application.Documents{
			PhotoIDRef:       "doc1",
			IncomeProofRef:   "doc2",
			IdentityVerified: true,
			IncomeVerified:   true,
			TermsAccepted:    true,
		},
	}
}

// draftTx wires a uow mock that hands fn the given draft and mock repos.
func draftTx(d *application.Draft, apps *applicationmock.Repo, loans *loanmock.Repo) *uowmock.UoW {
	m := uowmock.New()
	m.WithinDraftTxFn = func(ctx context.Context, owner string, fn func(r uow.Repos, d *application.Draft) error) error {
		if d == nil {
			return gorm.ErrRecordNotFound
		}
		return fn(uow.Repos{Applications: apps, Loans: loans}, d)
	}
	return m
}

func TestSubmit_Success(t *testing.T) {
	d := draftWithDocs()
	var createdLoan *domainLoan.Loan
	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
			createdLoan = l
			return nil
		},
	}
	uc := NewUsecase(draftTx(d, &applicationmock.Repo{}, loans), nil, func() time.Time { return fixedNow })

	res, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: 10000, LoanType: "personal", LoanPurpose: "debt consolidation", LoanTerm: 12,
	})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if len(res.LoanID) != 32 {
		t.Fatalf("LoanID length = %d", len(res.LoanID))
	}
	if math.Abs(res.MonthlyPayment-875.0) > 1e-9 {
		t.Fatalf("monthly = %v, want 875.0", res.MonthlyPayment)
	}

	if createdLoan == nil {
		t.Fatal("loan was not created")
	}
	if createdLoan.Status != domainLoan.StatusPending {
		t.Fatalf("loan status = %s, want pending", createdLoan.Status)
	}
	if createdLoan.InterestRate != 0.05 {
		t.Fatalf("rate = %v, want 0.05", createdLoan.InterestRate)
	}
	if len(createdLoan.Schedule) != 12 {
		t.Fatalf("schedule length = %d, want 12", len(createdLoan.Schedule))
	}
	if got := createdLoan.DocumentRefs; len(got) != 2 || got[0] != "doc1" || got[1] != "doc2" {
		t.Fatalf("document refs = %v", got)
	}
	if createdLoan.ApplicationID != d.ApplicationID {
		t.Fatalf("loan not linked to origin application")
	}

	if d.Status != application.StatusSubmitted {
		t.Fatalf("draft status = %s, want submitted", d.Status)
	}
	if d.SubmittedAt == nil || !d.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("submittedAt = %v", d.SubmittedAt)
	}
	if d.ActiveOwnerID != nil {
		t.Fatalf("active owner marker not released: %v", *d.ActiveOwnerID)
	}
	if d.LoanDetails.LoanAmount != 10000 || d.LoanDetails.LoanTerm != 12 {
		t.Fatalf("loan details not overwritten: %+v", d.LoanDetails)
	}
}

func TestSubmit_PartialDocumentRefs(t *testing.T) {
	d := draftWithDocs()
	d.Documents.IncomeProofRef = ""
	var createdLoan *domainLoan.Loan
	loans := &loanmock.Repo{CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
		createdLoan = l
		return nil
	}}
	uc := NewUsecase(draftTx(d, &applicationmock.Repo{}, loans), nil, func() time.Time { return fixedNow })

	if _, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: 5000, LoanType: "business", LoanPurpose: "inventory", LoanTerm: 6,
	}); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if got := createdLoan.DocumentRefs; len(got) != 1 || got[0] != "doc1" {
		t.Fatalf("document refs = %v, want [doc1]", got)
	}
}

func TestSubmit_MissingFields_ListsAll(t *testing.T) {
	uc := NewUsecase(uowmock.New(), nil, nil)

	_, err := uc.Submit(context.Background(), ownerID, SubmitInput{})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 4 {
		t.Fatalf("fields = %d, want all 4 missing fields listed: %v", len(ve.Fields), ve)
	}
}

func TestSubmit_NoDraft(t *testing.T) {
	uc := NewUsecase(draftTx(nil, &applicationmock.Repo{}, &loanmock.Repo{}), nil, nil)

	_, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: 10000, LoanType: "personal", LoanPurpose: "debt consolidation", LoanTerm: 12,
	})
	if !errors.Is(err, application.ErrNoDraft) {
		t.Fatalf("err = %v, want ErrNoDraft", err)
	}
}

func TestSubmit_InvalidDetails(t *testing.T) {
	d := draftWithDocs()
	uc := NewUsecase(draftTx(d, &applicationmock.Repo{}, &loanmock.Repo{}), nil, nil)

	_, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: -50, LoanType: "personal", LoanPurpose: "x", LoanTerm: 12,
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(ve.Error(), "loan_amount") {
		t.Fatalf("error does not name loan_amount: %v", ve)
	}
}

func TestSubmit_LoanWriteFails_CommitFailed(t *testing.T) {
	d := draftWithDocs()
	loans := &loanmock.Repo{CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
		return errors.New("disk full")
	}}
	uc := NewUsecase(draftTx(d, &applicationmock.Repo{}, loans), nil, nil)

	_, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: 10000, LoanType: "personal", LoanPurpose: "debt consolidation", LoanTerm: 12,
	})
	if !errors.Is(err, ErrCommitFailed) {
		t.Fatalf("err = %v, want ErrCommitFailed", err)
	}
}

func TestSubmit_CustomPricing(t *testing.T) {
	d := draftWithDocs()
	var createdLoan *domainLoan.Loan
	loans := &loanmock.Repo{CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
		createdLoan = l
		return nil
	}}
	pricing := domainLoan.FixedRatePricing(0.10)
	uc := NewUsecase(draftTx(d, &applicationmock.Repo{}, loans), pricing, func() time.Time { return fixedNow })

	res, err := uc.Submit(context.Background(), ownerID, SubmitInput{
		LoanAmount: 1200, LoanType: "personal", LoanPurpose: "appliances", LoanTerm: 12,
	})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if math.Abs(res.MonthlyPayment-110.0) > 1e-9 {
		t.Fatalf("monthly = %v, want 110.0", res.MonthlyPayment)
	}
	if createdLoan.InterestRate != 0.10 {
		t.Fatalf("rate = %v, want 0.10", createdLoan.InterestRate)
	}
}
