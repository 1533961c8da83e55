package mysql

import (
	"context"

	loanDomain "loan-origination/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	// Schedule entries and notes are created with the loan via association.
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit("Schedule", "Notes").Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("owner_id = ?", ownerID).
		Order("application_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByOwnerIDAndStatus(ctx context.Context, ownerID string, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Order("application_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Order("application_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) SaveEntry(ctx context.Context, e *loanDomain.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *LoanRepository) AddNote(ctx context.Context, n *loanDomain.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}
