package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
)

// internalMessage replaces the text of unclassified errors so driver details
// never reach clients.
const internalMessage = "internal server error"

// RespondServiceError writes an *apierr.Error with its own status and code and
// anything else as a 500 carrying fallbackCode.
func RespondServiceError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, fallbackCode, errors.New(internalMessage))
}
