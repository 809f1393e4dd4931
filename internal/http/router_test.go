package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/maturity-backend/internal/data/repos"
	"github.com/yungbote/maturity-backend/internal/data/repos/testutil"
	types "github.com/yungbote/maturity-backend/internal/domain"
	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	httpMW "github.com/yungbote/maturity-backend/internal/http/middleware"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/platform/locks"
	"github.com/yungbote/maturity-backend/internal/scoring"
	"github.com/yungbote/maturity-backend/internal/services"
	"gorm.io/gorm"
)

type routerEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := httpH.RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}

	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	orgRepo := repos.NewOrganizationRepo(db, log)
	frameworkRepo := repos.NewFrameworkRepo(db, log)
	assessmentRepo := repos.NewAssessmentRepo(db, log)
	answerRepo := repos.NewAnswerRepo(db, log)
	domainScoreRepo := repos.NewDomainScoreRepo(db, log)

	auth := services.NewAuthService(db, log, userRepo, orgRepo, "router-secret", time.Hour)
	assessments := services.NewAssessmentService(db, log,
		assessmentRepo, answerRepo, domainScoreRepo, frameworkRepo, orgRepo,
		locks.NewLocalLocker(), time.Minute)
	reports, err := services.NewReportService(log,
		assessmentRepo, answerRepo, domainScoreRepo, frameworkRepo, nil)
	if err != nil {
		t.Fatalf("NewReportService: %v", err)
	}

	engine := NewRouter(RouterConfig{
		Log:                 log,
		AuthMiddleware:      httpMW.NewAuthMiddleware(log, auth),
		HealthHandler:       httpH.NewHealthHandler(db),
		AuthHandler:         httpH.NewAuthHandler(log, auth),
		UserHandler:         httpH.NewUserHandler(services.NewUserService(db, log, userRepo)),
		OrganizationHandler: httpH.NewOrganizationHandler(log, services.NewOrganizationService(db, log, orgRepo, userRepo)),
		FrameworkHandler:    httpH.NewFrameworkHandler(services.NewFrameworkService(db, log, frameworkRepo)),
		AssessmentHandler:   httpH.NewAssessmentHandler(log, assessments),
		ReportHandler:       httpH.NewReportHandler(reports),
		AnalyticsHandler:    httpH.NewAnalyticsHandler(services.NewAnalyticsService(log, assessmentRepo)),
	})
	return &routerEnv{db: db, engine: engine}
}

func (e *routerEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *routerEnv) login(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var out services.LoginResult
	decode(t, w, &out)
	return out.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d want %d: %s", w.Code, status, w.Body.String())
	}
	var env response.ErrorEnvelope
	decode(t, w, &env)
	if env.Error.Code != code {
		t.Fatalf("code = %q want %q", env.Error.Code, code)
	}
}

func TestHealthRoutes(t *testing.T) {
	e := newRouterEnv(t)

	w := e.do(t, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("root: %d", w.Code)
	}
	w = e.do(t, http.MethodGet, "/healthcheck", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthcheck: %d %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newRouterEnv(t)

	w := e.do(t, http.MethodGet, "/api/me", "", nil)
	expectCode(t, w, http.StatusUnauthorized, "not_authenticated")
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("missing WWW-Authenticate header")
	}

	w = e.do(t, http.MethodGet, "/api/assessments", "garbage", nil)
	expectCode(t, w, http.StatusUnauthorized, "invalid_token")
}

func TestAssessmentFlowOverHTTP(t *testing.T) {
	e := newRouterEnv(t)
	ctx := context.Background()
	testutil.SeedUser(t, ctx, e.db, "flow@example.com")
	fw := testutil.SeedFramework(t, ctx, e.db, "Flow", []int{2}, []int{2})
	q := testutil.Questions(fw)

	token := e.login(t, "flow@example.com")

	w := e.do(t, http.MethodPost, "/api/assessments", token, map[string]any{"framework_id": fw.ID})
	expectCode(t, w, http.StatusBadRequest, "invalid_request")

	w = e.do(t, http.MethodPost, "/api/assessments", token, map[string]any{
		"team_name":    "Payments",
		"framework_id": fw.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var a types.Assessment
	decode(t, w, &a)
	base := "/api/assessments/" + a.ID.String()

	w = e.do(t, http.MethodPost, base+"/submit", token, nil)
	expectCode(t, w, http.StatusBadRequest, "no_answers")

	w = e.do(t, http.MethodPost, base+"/responses", token, map[string]any{
		"responses": []map[string]any{{"question_id": q[0].ID}},
	})
	expectCode(t, w, http.StatusBadRequest, "invalid_request")

	w = e.do(t, http.MethodPost, base+"/responses", token, map[string]any{
		"responses": []map[string]any{{"question_id": q[0].ID, "score": 3, "evidence": []string{" "}}},
	})
	expectCode(t, w, http.StatusBadRequest, "invalid_request")

	w = e.do(t, http.MethodPost, base+"/responses", token, map[string]any{
		"responses": []map[string]any{
			{"question_id": q[0].ID, "score": 5, "evidence": []string{"https://ci.example.com/pipeline"}},
			{"question_id": q[1].ID, "score": 5},
			{"question_id": q[2].ID, "score": 1, "notes": "manual deploys"},
			{"question_id": q[3].ID, "score": 0},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save responses: %d %s", w.Code, w.Body.String())
	}
	var saved []types.Answer
	decode(t, w, &saved)
	if len(saved) != 4 {
		t.Fatalf("saved %d answers", len(saved))
	}

	w = e.do(t, http.MethodGet, base+"/report", token, nil)
	expectCode(t, w, http.StatusBadRequest, "assessment_not_completed")

	w = e.do(t, http.MethodPost, base+"/submit", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	var submitted types.Assessment
	decode(t, w, &submitted)
	// domain 1 is 100, domain 2 is 10
	if submitted.Status != types.AssessmentStatusCompleted || submitted.OverallScore == nil || *submitted.OverallScore != 55 {
		t.Fatalf("unexpected submitted assessment: %+v", submitted)
	}

	w = e.do(t, http.MethodGet, base+"/domain-scores", token, nil)
	var scores []services.DomainScoreView
	decode(t, w, &scores)
	if len(scores) != 2 || scores[0].DomainName != "Domain 1" || scores[0].Score != 100 {
		t.Fatalf("domain scores: %s", w.Body.String())
	}

	w = e.do(t, http.MethodGet, base+"/report", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: %d %s", w.Code, w.Body.String())
	}
	var report scoring.Report
	decode(t, w, &report)
	if report.MaturityLevel.Level != 3 || len(report.DomainBreakdown) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	w = e.do(t, http.MethodGet, base+"/report/chart.png", token, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("chart: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if _, err := png.Decode(w.Body); err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}

	w = e.do(t, http.MethodPost, base+"/report/export", token, nil)
	expectCode(t, w, http.StatusServiceUnavailable, "export_unavailable")

	w = e.do(t, http.MethodGet, "/api/analytics/summary", token, nil)
	var summary repos.AssessmentSummary
	decode(t, w, &summary)
	if summary.Total != 1 || summary.Completed != 1 || summary.AverageScore != 55 {
		t.Fatalf("summary: %s", w.Body.String())
	}

	w = e.do(t, http.MethodDelete, base, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	w = e.do(t, http.MethodGet, base, token, nil)
	expectCode(t, w, http.StatusNotFound, "assessment_not_found")
}

func TestAssessmentRoutesEnforceOwnership(t *testing.T) {
	e := newRouterEnv(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, e.db, "owner@example.com")
	testutil.SeedUser(t, ctx, e.db, "intruder@example.com")
	fw := testutil.SeedFramework(t, ctx, e.db, "Owned", []int{1})
	a := testutil.SeedAssessment(t, ctx, e.db, owner.ID, fw.ID)

	token := e.login(t, "intruder@example.com")

	w := e.do(t, http.MethodGet, "/api/assessments/"+a.ID.String(), token, nil)
	expectCode(t, w, http.StatusForbidden, "access_denied")

	w = e.do(t, http.MethodGet, "/api/assessments/not-a-uuid", token, nil)
	expectCode(t, w, http.StatusBadRequest, "invalid_assessment_id")

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/assessments/%s/responses", uuid.New()), token, nil)
	expectCode(t, w, http.StatusNotFound, "assessment_not_found")
}

func TestAdminRoutes(t *testing.T) {
	e := newRouterEnv(t)
	ctx := context.Background()
	testutil.SeedUserWithRole(t, ctx, e.db, "admin@example.com", types.RoleAdmin)
	testutil.SeedUser(t, ctx, e.db, "plain@example.com")

	admin := e.login(t, "admin@example.com")
	plain := e.login(t, "plain@example.com")

	w := e.do(t, http.MethodPost, "/api/organizations", plain, map[string]any{"name": "Initech"})
	expectCode(t, w, http.StatusForbidden, "access_denied")

	w = e.do(t, http.MethodPost, "/api/organizations", admin, map[string]any{"name": "Initech", "size": "small"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create org: %d %s", w.Code, w.Body.String())
	}
	var org types.Organization
	decode(t, w, &org)

	w = e.do(t, http.MethodPost, "/api/register", admin, map[string]any{
		"email":           "hire@example.com",
		"password":        "longenough",
		"full_name":       "New Hire",
		"organization_id": org.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	hire := e.login(t, "hire@example.com")
	w = e.do(t, http.MethodGet, "/api/me", hire, nil)
	var me types.User
	decode(t, w, &me)
	if me.Email != "hire@example.com" || me.OrganizationID == nil || *me.OrganizationID != org.ID {
		t.Fatalf("me: %s", w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/api/organizations/"+org.ID.String(), hire, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("member get org: %d %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodDelete, "/api/organizations/"+org.ID.String(), admin, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete org: %d %s", w.Code, w.Body.String())
	}
}
