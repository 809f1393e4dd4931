package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	httpMW "github.com/yungbote/maturity-backend/internal/http/middleware"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	OrganizationHandler *httpH.OrganizationHandler
	FrameworkHandler    *httpH.FrameworkHandler
	AssessmentHandler   *httpH.AssessmentHandler
	ReportHandler       *httpH.ReportHandler
	AnalyticsHandler    *httpH.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected, admin only)
		if cfg.AuthHandler != nil {
			protected.POST("/register", cfg.AuthHandler.Register)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Organizations
		if cfg.OrganizationHandler != nil {
			protected.GET("/organizations", cfg.OrganizationHandler.List)
			protected.POST("/organizations", cfg.OrganizationHandler.Create)
			protected.GET("/organizations/:id", cfg.OrganizationHandler.Get)
			protected.PUT("/organizations/:id", cfg.OrganizationHandler.Update)
			protected.DELETE("/organizations/:id", cfg.OrganizationHandler.Delete)
		}

		// Frameworks
		if cfg.FrameworkHandler != nil {
			protected.GET("/frameworks", cfg.FrameworkHandler.List)
			protected.GET("/frameworks/:id", cfg.FrameworkHandler.Get)
			protected.GET("/frameworks/:id/structure", cfg.FrameworkHandler.Structure)
		}

		// Assessments
		if cfg.AssessmentHandler != nil {
			protected.GET("/assessments", cfg.AssessmentHandler.List)
			protected.POST("/assessments", cfg.AssessmentHandler.Create)
			protected.GET("/assessments/:id", cfg.AssessmentHandler.Get)
			protected.PUT("/assessments/:id", cfg.AssessmentHandler.Update)
			protected.DELETE("/assessments/:id", cfg.AssessmentHandler.Delete)
			protected.POST("/assessments/:id/responses", cfg.AssessmentHandler.SaveAnswers)
			protected.GET("/assessments/:id/responses", cfg.AssessmentHandler.ListAnswers)
			protected.POST("/assessments/:id/submit", cfg.AssessmentHandler.Submit)
			protected.GET("/assessments/:id/domain-scores", cfg.AssessmentHandler.DomainScores)
		}

		// Reports
		if cfg.ReportHandler != nil {
			protected.GET("/assessments/:id/report", cfg.ReportHandler.Report)
			protected.GET("/assessments/:id/report/chart.png", cfg.ReportHandler.Chart)
			protected.POST("/assessments/:id/report/export", cfg.ReportHandler.Export)
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			protected.GET("/analytics/summary", cfg.AnalyticsHandler.Summary)
		}
	}

	return r
}
