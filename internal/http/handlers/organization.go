package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type OrganizationHandler struct {
	log        *logger.Logger
	orgService services.OrganizationService
}

func NewOrganizationHandler(log *logger.Logger, orgService services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{log: log.With("handler", "OrganizationHandler"), orgService: orgService}
}

type organizationRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Industry string `json:"industry" binding:"max=255"`
	Size     string `json:"size"`
}

type organizationPatchRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Industry *string `json:"industry" binding:"omitempty,max=255"`
	Size     *string `json:"size"`
}

// GET /api/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	orgs, err := h.orgService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_organizations_failed")
		return
	}
	response.RespondOK(c, orgs)
}

// POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	org, err := h.orgService.Create(c.Request.Context(), services.OrganizationInput{
		Name:     req.Name,
		Industry: req.Industry,
		Size:     types.OrganizationSize(req.Size),
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_organization_failed")
		return
	}
	response.RespondCreated(c, org)
}

// GET /api/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "invalid_organization_id")
	if !ok {
		return
	}
	org, err := h.orgService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "get_organization_failed")
		return
	}
	response.RespondOK(c, org)
}

// PUT /api/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "invalid_organization_id")
	if !ok {
		return
	}
	var req organizationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	patch := services.OrganizationPatch{Name: req.Name, Industry: req.Industry}
	if req.Size != nil {
		size := types.OrganizationSize(*req.Size)
		patch.Size = &size
	}
	org, err := h.orgService.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.RespondServiceError(c, err, "update_organization_failed")
		return
	}
	response.RespondOK(c, org)
}

// DELETE /api/organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "invalid_organization_id")
	if !ok {
		return
	}
	if err := h.orgService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_organization_failed")
		return
	}
	response.RespondNoContent(c)
}
