package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err, "login_failed")
		return
	}
	response.RespondOK(c, res)
}

type registerRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=8"`
	FullName       string     `json:"full_name" binding:"required"`
	Role           string     `json:"role" binding:"omitempty,oneof=admin assessor"`
	OrganizationID *uuid.UUID `json:"organization_id"`
}

// POST /api/register (admin only)
func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), services.RegisterUserInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Role:           types.Role(req.Role),
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		response.RespondServiceError(c, err, "registration_failed")
		return
	}
	response.RespondCreated(c, user)
}
