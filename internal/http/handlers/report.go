package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GET /api/assessments/:id/report
func (h *ReportHandler) Report(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	report, err := h.reportService.Generate(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "generate_report_failed")
		return
	}
	response.RespondOK(c, report)
}

// GET /api/assessments/:id/report/chart.png
func (h *ReportHandler) Chart(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	raw, err := h.reportService.RenderChart(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "render_chart_failed")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", raw)
}

// POST /api/assessments/:id/report/export
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	out, err := h.reportService.Export(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "export_report_failed")
		return
	}
	response.RespondCreated(c, out)
}
