package repos

import (
	"github.com/yungbote/maturity-backend/internal/data/repos/assessment"
	"github.com/yungbote/maturity-backend/internal/data/repos/catalog"
	"github.com/yungbote/maturity-backend/internal/data/repos/organization"
	"github.com/yungbote/maturity-backend/internal/data/repos/user"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type OrganizationRepo = organization.OrganizationRepo

type FrameworkRepo = catalog.FrameworkRepo

type AssessmentRepo = assessment.AssessmentRepo
type AssessmentSummary = assessment.Summary
type AnswerRepo = assessment.AnswerRepo
type DomainScoreRepo = assessment.DomainScoreRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
	return organization.NewOrganizationRepo(db, baseLog)
}

func NewFrameworkRepo(db *gorm.DB, baseLog *logger.Logger) FrameworkRepo {
	return catalog.NewFrameworkRepo(db, baseLog)
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return assessment.NewAssessmentRepo(db, baseLog)
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return assessment.NewAnswerRepo(db, baseLog)
}

func NewDomainScoreRepo(db *gorm.DB, baseLog *logger.Logger) DomainScoreRepo {
	return assessment.NewDomainScoreRepo(db, baseLog)
}
