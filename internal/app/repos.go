package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/data/repos"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Organization repos.OrganizationRepo
	Framework    repos.FrameworkRepo
	Assessment   repos.AssessmentRepo
	Answer       repos.AnswerRepo
	DomainScore  repos.DomainScoreRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Organization: repos.NewOrganizationRepo(db, log),
		Framework:    repos.NewFrameworkRepo(db, log),
		Assessment:   repos.NewAssessmentRepo(db, log),
		Answer:       repos.NewAnswerRepo(db, log),
		DomainScore:  repos.NewDomainScoreRepo(db, log),
	}
}
