package catalog

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type FrameworkRepo interface {
	// Create stores frameworks together with their nested domains, gates and questions.
	Create(ctx context.Context, tx *gorm.DB, frameworks []*types.Framework) ([]*types.Framework, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Framework, error)
	GetByNameVersion(ctx context.Context, tx *gorm.DB, name, version string) (*types.Framework, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Framework, error)
	// GetTree loads one framework with its full ordered tree, or nil when missing.
	GetTree(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Framework, error)
	GetDomainsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Domain, error)
}

type frameworkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFrameworkRepo(db *gorm.DB, baseLog *logger.Logger) FrameworkRepo {
	repoLog := baseLog.With("repo", "FrameworkRepo")
	return &frameworkRepo{db: db, log: repoLog}
}

func byDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

func (r *frameworkRepo) Create(ctx context.Context, tx *gorm.DB, frameworks []*types.Framework) ([]*types.Framework, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(frameworks) == 0 {
		return []*types.Framework{}, nil
	}
	for _, fw := range frameworks {
		if err := transaction.WithContext(ctx).Create(fw).Error; err != nil {
			return nil, err
		}
	}
	return frameworks, nil
}

func (r *frameworkRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Framework, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Framework
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

func (r *frameworkRepo) GetByNameVersion(ctx context.Context, tx *gorm.DB, name, version string) (*types.Framework, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Framework
	if err := transaction.WithContext(ctx).
		Where("name = ? AND version = ?", name, version).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *frameworkRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Framework, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Framework
	if err := transaction.WithContext(ctx).
		Order("name ASC, version ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *frameworkRepo) GetTree(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Framework, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Framework
	if err := transaction.WithContext(ctx).
		Preload("Domains", byDisplayOrder).
		Preload("Domains.Gates", byDisplayOrder).
		Preload("Domains.Gates.Questions", byDisplayOrder).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *frameworkRepo) GetDomainsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Domain
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
