package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"api error", apierr.NotFound("assessment_not_found", "Assessment not found"), http.StatusNotFound, "assessment_not_found", "Assessment not found"},
		{"wrapped api error", errors.Join(errors.New("ctx"), apierr.Conflict("submit_in_progress", "busy")), http.StatusConflict, "submit_in_progress", "busy"},
		{"plain error", errors.New("pq: connection refused"), http.StatusInternalServerError, "submit_failed", internalMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondServiceError(c, tc.err, "submit_failed")

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d want %d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMsg {
				t.Fatalf("envelope = %+v", env.Error)
			}
		})
	}
}
