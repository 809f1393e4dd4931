package organization

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type OrganizationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orgs []*types.Organization) ([]*types.Organization, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Organization, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Organization, error)
	Update(ctx context.Context, tx *gorm.DB, org *types.Organization) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type organizationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
	repoLog := baseLog.With("repo", "OrganizationRepo")
	return &organizationRepo{db: db, log: repoLog}
}

func (r *organizationRepo) Create(ctx context.Context, tx *gorm.DB, orgs []*types.Organization) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(orgs) == 0 {
		return []*types.Organization{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Organization
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Organization
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) Update(ctx context.Context, tx *gorm.DB, org *types.Organization) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if org == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Organization{}).
		Where("id = ?", org.ID).
		Updates(map[string]interface{}{
			"name":       org.Name,
			"industry":   org.Industry,
			"size":       org.Size,
			"updated_at": org.UpdatedAt,
		}).Error
}

func (r *organizationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Organization{}).Error
}
