package assessment

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type DomainScoreRepo interface {
	GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.DomainScore, error)
	// Replace deletes every stored score of the assessment and inserts rows.
	// Run it inside the submit transaction so readers never see a partial set.
	Replace(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, rows []*types.DomainScore) error
	FullDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error
}

type domainScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainScoreRepo(db *gorm.DB, baseLog *logger.Logger) DomainScoreRepo {
	repoLog := baseLog.With("repo", "DomainScoreRepo")
	return &domainScoreRepo{db: db, log: repoLog}
}

func (r *domainScoreRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.DomainScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DomainScore
	if len(assessmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *domainScoreRepo) Replace(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, rows []*types.DomainScore) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Delete(&types.DomainScore{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.AssessmentID = assessmentID
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (r *domainScoreRepo) FullDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessmentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Delete(&types.DomainScore{}).Error
}
