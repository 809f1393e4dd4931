package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/http"
	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	httpMW "github.com/yungbote/maturity-backend/internal/http/middleware"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Organization *httpH.OrganizationHandler
	Framework    *httpH.FrameworkHandler
	Assessment   *httpH.AssessmentHandler
	Report       *httpH.ReportHandler
	Analytics    *httpH.AnalyticsHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Auth:         httpH.NewAuthHandler(log, services.Auth),
		User:         httpH.NewUserHandler(services.User),
		Organization: httpH.NewOrganizationHandler(log, services.Organization),
		Framework:    httpH.NewFrameworkHandler(services.Framework),
		Assessment:   httpH.NewAssessmentHandler(log, services.Assessment),
		Report:       httpH.NewReportHandler(services.Report),
		Analytics:    httpH.NewAnalyticsHandler(services.Analytics),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		ServiceName:         serviceName,
		CORSOrigins:         cfg.CORSOrigins,
		AuthMiddleware:      middleware.Auth,
		HealthHandler:       handlers.Health,
		AuthHandler:         handlers.Auth,
		UserHandler:         handlers.User,
		OrganizationHandler: handlers.Organization,
		FrameworkHandler:    handlers.Framework,
		AssessmentHandler:   handlers.Assessment,
		ReportHandler:       handlers.Report,
		AnalyticsHandler:    handlers.Analytics,
	})
}
