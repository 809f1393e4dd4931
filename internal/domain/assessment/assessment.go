package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Assessment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TeamName       string     `gorm:"not null;column:team_name" json:"team_name"`
	AssessorID     uuid.UUID  `gorm:"type:uuid;not null;index;column:assessor_id" json:"assessor_id"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index;column:organization_id" json:"organization_id,omitempty"`
	FrameworkID    uuid.UUID  `gorm:"type:uuid;not null;index;column:framework_id" json:"framework_id"`
	Status         Status     `gorm:"not null;index;column:status" json:"status"`
	OverallScore   *float64   `gorm:"column:overall_score" json:"overall_score"`
	MaturityLevel  *int       `gorm:"column:maturity_level" json:"maturity_level"`
	StartedAt      *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Assessment) TableName() string { return "assessments" }

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Answer is one scored response to a framework question. At most one exists
// per (assessment, question); later writes overwrite it.
type Answer struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_answer_assessment_question,priority:1;column:assessment_id" json:"assessment_id"`
	QuestionID   uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_answer_assessment_question,priority:2;column:question_id" json:"question_id"`
	Score        int                         `gorm:"not null;column:score" json:"score"`
	Notes        string                      `gorm:"column:notes" json:"notes,omitempty"`
	Evidence     datatypes.JSONSlice[string] `gorm:"column:evidence" json:"evidence"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Answer) TableName() string { return "gate_responses" }

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// DomainScore is the stored per-domain result of a submit. The set for an
// assessment is replaced as a whole on every submit.
type DomainScore struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID  uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_domain_score_assessment_domain,priority:1;column:assessment_id" json:"assessment_id"`
	DomainID      uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_domain_score_assessment_domain,priority:2;column:domain_id" json:"domain_id"`
	Score         float64                     `gorm:"not null;column:score" json:"score"`
	MaturityLevel int                         `gorm:"not null;column:maturity_level" json:"maturity_level"`
	Strengths     datatypes.JSONSlice[string] `gorm:"column:strengths" json:"strengths"`
	Gaps          datatypes.JSONSlice[string] `gorm:"column:gaps" json:"gaps"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (DomainScore) TableName() string { return "domain_scores" }

func (d *DomainScore) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
