package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Organization services.OrganizationService
	Framework    services.FrameworkService
	Assessment   services.AssessmentService
	Report       services.ReportService
	Analytics    services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	report, err := services.NewReportService(log,
		repos.Assessment, repos.Answer, repos.DomainScore, repos.Framework, clients.Store)
	if err != nil {
		return Services{}, fmt.Errorf("init report service: %w", err)
	}

	assessment := services.NewAssessmentService(db, log,
		repos.Assessment, repos.Answer, repos.DomainScore, repos.Framework, repos.Organization,
		clients.Locker, cfg.SubmitLockTTL)

	return Services{
		Auth:         services.NewAuthService(db, log, repos.User, repos.Organization, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:         services.NewUserService(db, log, repos.User),
		Organization: services.NewOrganizationService(db, log, repos.Organization, repos.User),
		Framework:    services.NewFrameworkService(db, log, repos.Framework),
		Assessment:   assessment,
		Report:       report,
		Analytics:    services.NewAnalyticsService(log, repos.Assessment),
	}, nil
}
