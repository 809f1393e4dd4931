package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	"github.com/yungbote/maturity-backend/internal/data/repos/testutil"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/ctxutil"
	"github.com/yungbote/maturity-backend/internal/platform/locks"
	"github.com/yungbote/maturity-backend/internal/platform/objectstore"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db *gorm.DB

	userRepo        repos.UserRepo
	orgRepo         repos.OrganizationRepo
	frameworkRepo   repos.FrameworkRepo
	assessmentRepo  repos.AssessmentRepo
	answerRepo      repos.AnswerRepo
	domainScoreRepo repos.DomainScoreRepo

	auth        AuthService
	users       UserService
	orgs        OrganizationService
	frameworks  FrameworkService
	assessments AssessmentService
	reports     ReportService
	analytics   AnalyticsService
}

type envOptions struct {
	locker          locks.Locker
	store           objectstore.Store
	wrapAssessments func(repos.AssessmentRepo) repos.AssessmentRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, envOptions{})
}

func newTestEnvWith(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:              db,
		userRepo:        repos.NewUserRepo(db, log),
		orgRepo:         repos.NewOrganizationRepo(db, log),
		frameworkRepo:   repos.NewFrameworkRepo(db, log),
		assessmentRepo:  repos.NewAssessmentRepo(db, log),
		answerRepo:      repos.NewAnswerRepo(db, log),
		domainScoreRepo: repos.NewDomainScoreRepo(db, log),
	}
	if opts.wrapAssessments != nil {
		env.assessmentRepo = opts.wrapAssessments(env.assessmentRepo)
	}
	env.auth = NewAuthService(db, log, env.userRepo, env.orgRepo, testJWTSecret, time.Hour)
	env.users = NewUserService(db, log, env.userRepo)
	env.orgs = NewOrganizationService(db, log, env.orgRepo, env.userRepo)
	env.frameworks = NewFrameworkService(db, log, env.frameworkRepo)
	env.assessments = NewAssessmentService(db, log,
		env.assessmentRepo, env.answerRepo, env.domainScoreRepo, env.frameworkRepo, env.orgRepo,
		opts.locker, time.Minute)
	reports, err := NewReportService(log,
		env.assessmentRepo, env.answerRepo, env.domainScoreRepo, env.frameworkRepo, opts.store)
	if err != nil {
		t.Fatalf("NewReportService: %v", err)
	}
	env.reports = reports
	env.analytics = NewAnalyticsService(log, env.assessmentRepo)
	return env
}

func callerCtx(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID: u.ID,
		Role:   string(u.Role),
	})
}

func expectAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil error", status, code)
	}
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d %s, got %d %s (%v)", status, code, ae.Status, ae.Code, ae.Err)
	}
}

type busyLocker struct{}

func (busyLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return nil, locks.ErrLocked
}

type failingLocker struct{}

func (failingLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return nil, errors.New("redis down")
}

func TestRequireCaller(t *testing.T) {
	if _, err := requireCaller(context.Background()); err == nil {
		t.Fatalf("expected error without request data")
	} else {
		expectAPIErr(t, err, http.StatusUnauthorized, "not_authenticated")
	}
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: uuid.New(), Role: "assessor"})
	if _, err := requireAdmin(ctx); err == nil {
		t.Fatalf("expected assessor to be rejected")
	} else {
		expectAPIErr(t, err, http.StatusForbidden, "access_denied")
	}
}

func TestPage(t *testing.T) {
	cases := []struct {
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{0, 0, 0, defaultPageLimit},
		{-5, 10, 0, 10},
		{20, maxPageLimit + 1, 20, maxPageLimit},
	}
	for _, tc := range cases {
		s, l := page(tc.skip, tc.limit)
		if s != tc.wantSkip || l != tc.wantLimit {
			t.Fatalf("page(%d,%d) = %d,%d want %d,%d", tc.skip, tc.limit, s, l, tc.wantSkip, tc.wantLimit)
		}
	}
}
