package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/http/response"
	pkgerrors "github.com/yungbote/maturity-backend/internal/pkg/errors"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/ctxutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.RespondError(c, http.StatusUnauthorized, "not_authenticated", errors.New("Not authenticated"))
			c.Abort()
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			if ae, ok := apierr.As(err); ok {
				if errors.Is(err, pkgerrors.ErrUnauthorized) {
					c.Header("WWW-Authenticate", "Bearer")
				}
				response.RespondError(c, ae.Status, ae.Code, ae.Err)
				c.Abort()
				return
			}
			am.log.Error("Token validation failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "auth_failed", errors.New("internal server error"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the token query parameter so image links can authenticate.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Query("token"))
}
