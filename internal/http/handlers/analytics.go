package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Summary(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "analytics_summary_failed")
		return
	}
	response.RespondOK(c, summary)
}
