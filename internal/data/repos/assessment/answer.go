package assessment

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepo interface {
	// Upsert inserts answers, overwriting score, notes and evidence of any
	// existing answer to the same (assessment, question).
	Upsert(ctx context.Context, tx *gorm.DB, answers []*types.Answer) error
	GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Answer, error)
	GetByAssessmentAndQuestionIDs(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, questionIDs []uuid.UUID) ([]*types.Answer, error)
	CountByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error)
	FullDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (r *answerRepo) Upsert(ctx context.Context, tx *gorm.DB, answers []*types.Answer) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(answers) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "notes", "evidence", "updated_at"}),
		}).
		Create(&answers).Error
}

func (r *answerRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Answer
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

func (r *answerRepo) GetByAssessmentAndQuestionIDs(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, questionIDs []uuid.UUID) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Answer
	if len(questionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id = ? AND question_id IN ?", assessmentID, questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *answerRepo) CountByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Answer{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *answerRepo) FullDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessmentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Delete(&types.Answer{}).Error
}
