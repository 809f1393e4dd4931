package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// Summary aggregates one assessor's assessments. Averages cover completed
// assessments only.
type Summary struct {
	Total                int64   `json:"total_assessments"`
	Completed            int64   `json:"completed_assessments"`
	AverageScore         float64 `json:"average_score"`
	AverageMaturityLevel float64 `json:"average_maturity_level"`
}

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error)
	ListByAssessorID(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID, offset, limit int) ([]*types.Assessment, error)
	Rename(ctx context.Context, tx *gorm.DB, id uuid.UUID, teamName string) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.AssessmentStatus) (bool, error)
	Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, overallScore float64, maturityLevel int, completedAt time.Time) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	SummaryByAssessorID(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID) (*Summary, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessments) == 0 {
		return []*types.Assessment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Assessment
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

func (r *assessmentRepo) ListByAssessorID(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID, offset, limit int) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Assessment
	if err := transaction.WithContext(ctx).
		Where("assessor_id = ?", assessorID).
		Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Rename writes team_name only, leaving scoring columns to Complete.
func (r *assessmentRepo) Rename(ctx context.Context, tx *gorm.DB, id uuid.UUID, teamName string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"team_name":  teamName,
			"updated_at": time.Now().UTC(),
		}).Error
}

// UpdateStatus moves id from one status to another and reports whether a row
// matched. It never touches an assessment in any other status.
func (r *assessmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.AssessmentStatus) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Complete stores the submit result and marks the assessment completed.
func (r *assessmentRepo) Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, overallScore float64, maturityLevel int, completedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         types.AssessmentStatusCompleted,
			"overall_score":  overallScore,
			"maturity_level": maturityLevel,
			"completed_at":   completedAt,
			"updated_at":     completedAt,
		}).Error
}

func (r *assessmentRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Assessment{}).Error
}

func (r *assessmentRepo) SummaryByAssessorID(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID) (*Summary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := &Summary{}
	if err := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("assessor_id = ?", assessorID).
		Count(&out.Total).Error; err != nil {
		return nil, err
	}

	var row struct {
		Completed            int64
		AverageScore         *float64
		AverageMaturityLevel *float64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Select("COUNT(*) AS completed, AVG(overall_score) AS average_score, AVG(maturity_level) AS average_maturity_level").
		Where("assessor_id = ? AND status = ?", assessorID, types.AssessmentStatusCompleted).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	out.Completed = row.Completed
	if row.AverageScore != nil {
		out.AverageScore = *row.AverageScore
	}
	if row.AverageMaturityLevel != nil {
		out.AverageMaturityLevel = *row.AverageMaturityLevel
	}
	return out, nil
}
