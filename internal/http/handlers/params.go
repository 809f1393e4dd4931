package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/http/response"
)

// pathID parses the :id route parameter, writing a 400 with code on failure.
func pathID(c *gin.Context, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		if err == nil {
			err = errors.New("id must not be empty")
		}
		response.RespondError(c, http.StatusBadRequest, code, err)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads skip/limit; the service clamps the values.
func pageParams(c *gin.Context) (int, int, bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_skip", err)
		return 0, 0, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return 0, 0, false
	}
	return skip, limit, true
}
