package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/services"
)

type FrameworkHandler struct {
	frameworkService services.FrameworkService
}

func NewFrameworkHandler(frameworkService services.FrameworkService) *FrameworkHandler {
	return &FrameworkHandler{frameworkService: frameworkService}
}

// GET /api/frameworks
func (h *FrameworkHandler) List(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	frameworks, err := h.frameworkService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_frameworks_failed")
		return
	}
	response.RespondOK(c, frameworks)
}

// GET /api/frameworks/:id
func (h *FrameworkHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "invalid_framework_id")
	if !ok {
		return
	}
	fw, err := h.frameworkService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "get_framework_failed")
		return
	}
	response.RespondOK(c, fw)
}

// GET /api/frameworks/:id/structure
func (h *FrameworkHandler) Structure(c *gin.Context) {
	id, ok := pathID(c, "invalid_framework_id")
	if !ok {
		return
	}
	fw, err := h.frameworkService.Structure(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "get_framework_structure_failed")
		return
	}
	response.RespondOK(c, fw)
}
