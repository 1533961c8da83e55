package mysql

import (
	"context"

	appDomain "loan-origination/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, d *appDomain.Draft) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, d *appDomain.Draft) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *ApplicationRepository) GetDraftByOwnerID(ctx context.Context, ownerID string) (*appDomain.Draft, error) {
	var out appDomain.Draft
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, appDomain.StatusDraft).
		Order("updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// GetDraftByOwnerIDForUpdate takes a row lock so the submission commit
// serializes against concurrent step saves and double submits.
func (r *ApplicationRepository) GetDraftByOwnerIDForUpdate(ctx context.Context, ownerID string) (*appDomain.Draft, error) {
	var out appDomain.Draft
	tx := r.db.WithContext(ctx)
	// sqlite (tests) has no SELECT ... FOR UPDATE; its writes serialize anyway
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	res := tx.
		Where("owner_id = ? AND status = ?", ownerID, appDomain.StatusDraft).
		Order("updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]appDomain.Draft, error) {
	var out []appDomain.Draft
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
