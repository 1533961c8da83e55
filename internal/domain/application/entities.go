package application

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNoDraft is returned when an owner has no in-progress draft to mutate.
	ErrNoDraft = errors.New("no draft application found")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// PersonalInfo is step 1 of the application.
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// LoanDetails is step 2 of the application. Overwritten again at submit time.
type LoanDetails struct {
	LoanType    string  `json:"loan_type"`
	LoanAmount  float64 `json:"loan_amount"`
	LoanTerm    int     `json:"loan_term"`
	LoanPurpose string  `json:"loan_purpose"`
}

// FinancialInfo is step 3 of the application.
type FinancialInfo struct {
	EmploymentStatus string  `json:"employment_status"`
	EmployerName     string  `json:"employer_name"`
	MonthlyIncome    float64 `json:"monthly_income"`
	OtherIncome      float64 `json:"other_income"`
	CreditScoreRange string  `json:"credit_score_range"`
}

// Documents is step 4: opaque content-store references plus the three
// attestations required before submission.
type Documents struct {
	PhotoIDRef       string `json:"photo_id_ref"`
	IncomeProofRef   string `json:"income_proof_ref"`
	IdentityVerified bool   `json:"identity_verified"`
	IncomeVerified   bool   `json:"income_verified"`
	TermsAccepted    bool   `json:"terms_accepted"`
}

// Draft is an in-progress loan application. Each owner has at most one row
// in status=draft at any time; the submission engine flips it to submitted
// exactly once, after which the step operations no longer see it.
type Draft struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string         `gorm:"size:32;uniqueIndex:ux_applications_app_id" json:"application_id"`
	OwnerID       string         `gorm:"size:32;index:idx_applications_owner_status" json:"owner_id"`
	// ActiveOwnerID mirrors OwnerID while the row is in status=draft and is
	// cleared on submission; its unique index caps each owner at one open draft.
	ActiveOwnerID *string `gorm:"size:32;uniqueIndex:ux_applications_active_owner" json:"-"`
	PersonalInfo  PersonalInfo   `gorm:"serializer:json;type:text" json:"personal_info"`
	LoanDetails   LoanDetails    `gorm:"serializer:json;type:text" json:"loan_details"`
	FinancialInfo FinancialInfo  `gorm:"serializer:json;type:text" json:"financial_info"`
	Documents     Documents      `gorm:"serializer:json;type:text" json:"documents"`
	Status        Status         `gorm:"size:16;index:idx_applications_owner_status;default:'draft'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Draft) TableName() string { return "loan_applications" }
