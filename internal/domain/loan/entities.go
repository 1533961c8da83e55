package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("loan not found")
	ErrEntryNotFound = errors.New("schedule entry not found")
	ErrForbidden     = errors.New("not authorized for this loan")
	ErrInvalidStatus = errors.New("invalid payment status")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusActive      Status = "active"
	StatusClosed      Status = "closed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// ValidPaymentStatus reports whether s is one of the schedule-entry states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// Loan is a committed application. Created exactly once per successful
// submission; never re-derived from its draft afterward.
type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OwnerID         string          `gorm:"size:32;index:idx_loans_owner" json:"owner_id"`
	ApplicationID   string          `gorm:"size:32" json:"application_id,omitempty"`
	Principal       float64         `gorm:"type:decimal(18,2)" json:"principal"`
	LoanType        string          `gorm:"size:32" json:"loan_type"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	InterestRate    float64         `gorm:"type:decimal(6,4)" json:"interest_rate"`
	TermMonths      int             `json:"term_months"`
	MonthlyPayment  float64         `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	DocumentRefs    []string        `gorm:"serializer:json;type:text" json:"document_refs"`
	Status          Status          `gorm:"size:16;default:'pending'" json:"status"`
	ApplicationDate time.Time       `json:"application_date"`
	ApprovalDate    *time.Time      `json:"approval_date,omitempty"`
	Schedule        []ScheduleEntry `gorm:"foreignKey:LoanRef;references:ID" json:"repayment_schedule"`
	Notes           []Note          `gorm:"foreignKey:LoanRef;references:ID" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// ScheduleEntry is one installment of a loan's repayment plan. Entries are
// created once with the loan and only ever mutated through the
// payment-status transition.
type ScheduleEntry struct {
	ID          uint64        `gorm:"primaryKey;column:id" json:"-"`
	LoanRef     uint64        `gorm:"index:idx_schedule_loan_seq" json:"-"`
	Seq         int           `gorm:"index:idx_schedule_loan_seq" json:"seq"`
	DueDate     time.Time     `json:"due_date"`
	Amount      float64       `gorm:"type:decimal(18,2)" json:"amount"`
	Status      PaymentStatus `gorm:"size:16;default:'pending'" json:"status"`
	PaymentDate *time.Time    `json:"payment_date,omitempty"`
}

func (ScheduleEntry) TableName() string { return "loan_schedule_entries" }

// Note is an append-only audit remark on a loan.
type Note struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanRef   uint64    `gorm:"index" json:"-"`
	Content   string    `gorm:"type:text" json:"content"`
	AuthorID  string    `gorm:"size:32" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Note) TableName() string { return "loan_notes" }
