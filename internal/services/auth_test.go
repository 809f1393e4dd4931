package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos/testutil"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/ctxutil"
)

func TestLoginIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, env.db, "alice@example.com")

	res, err := env.auth.Login(ctx, "  Alice@Example.com ", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.TokenType != "bearer" || res.AccessToken == "" {
		t.Fatalf("unexpected login result: %+v", res)
	}
	if res.ExpiresIn != int(time.Hour.Seconds()) {
		t.Fatalf("expires_in = %d", res.ExpiresIn)
	}

	authed, err := env.auth.SetContextFromToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != u.ID || rd.Role != string(types.RoleAssessor) {
		t.Fatalf("unexpected request data: %+v", rd)
	}

	users, err := env.userRepo.GetByIDs(ctx, nil, []uuid.UUID{u.ID})
	if err != nil || len(users) != 1 {
		t.Fatalf("GetByIDs: %v (%d)", err, len(users))
	}
	if users[0].LastLogin == nil {
		t.Fatalf("expected last_login to be recorded")
	}
}

func TestLoginRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, env.db, "bob@example.com")

	_, err := env.auth.Login(ctx, "bob@example.com", "wrong")
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_credentials")

	_, err = env.auth.Login(ctx, "nobody@example.com", "password123")
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_credentials")

	if err := env.db.Model(&types.User{}).Where("id = ?", u.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = env.auth.Login(ctx, "bob@example.com", "password123")
	expectAPIErr(t, err, http.StatusBadRequest, "inactive_user")
}

func TestSetContextFromTokenRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, env.db, "carol@example.com")

	_, err := env.auth.SetContextFromToken(ctx, "")
	expectAPIErr(t, err, http.StatusUnauthorized, "not_authenticated")

	_, err = env.auth.SetContextFromToken(ctx, "not-a-jwt")
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	sign := func(secret string, subject string, exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		})
		s, err := tok.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	_, err = env.auth.SetContextFromToken(ctx, sign("other-secret", u.ID.String(), time.Now().Add(time.Hour)))
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	_, err = env.auth.SetContextFromToken(ctx, sign(testJWTSecret, u.ID.String(), time.Now().Add(-time.Minute)))
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	_, err = env.auth.SetContextFromToken(ctx, sign(testJWTSecret, uuid.NewString(), time.Now().Add(time.Hour)))
	expectAPIErr(t, err, http.StatusUnauthorized, "invalid_token")
}

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUserWithRole(t, ctx, env.db, "admin@example.com", types.RoleAdmin)
	assessor := testutil.SeedUser(t, ctx, env.db, "assessor@example.com")

	in := RegisterUserInput{Email: "new@example.com", Password: "password123", FullName: "New User"}

	_, err := env.auth.RegisterUser(callerCtx(assessor), in)
	expectAPIErr(t, err, http.StatusForbidden, "access_denied")

	created, err := env.auth.RegisterUser(callerCtx(admin), in)
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if created.Role != types.RoleAssessor || !created.IsActive {
		t.Fatalf("unexpected user: %+v", created)
	}
	if created.Password == in.Password {
		t.Fatalf("password stored in clear")
	}

	_, err = env.auth.RegisterUser(callerCtx(admin), in)
	expectAPIErr(t, err, http.StatusBadRequest, "email_in_use")

	bad := in
	bad.Email = "other@example.com"
	bad.Role = "owner"
	_, err = env.auth.RegisterUser(callerCtx(admin), bad)
	expectAPIErr(t, err, http.StatusBadRequest, "invalid_role")

	orphan := in
	orphan.Email = "orphan@example.com"
	missing := uuid.New()
	orphan.OrganizationID = &missing
	_, err = env.auth.RegisterUser(callerCtx(admin), orphan)
	expectAPIErr(t, err, http.StatusNotFound, "organization_not_found")

	if _, err := env.auth.Login(ctx, "new@example.com", "password123"); err != nil {
		t.Fatalf("registered user cannot log in: %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.auth.EnsureAdmin(ctx, "root@example.com", "password123", "")
	if err != nil || !created {
		t.Fatalf("EnsureAdmin first: created=%v err=%v", created, err)
	}
	if first.Role != types.RoleAdmin || first.FullName != "Administrator" {
		t.Fatalf("unexpected admin: %+v", first)
	}

	second, created, err := env.auth.EnsureAdmin(ctx, "ROOT@example.com", "different", "")
	if err != nil || created {
		t.Fatalf("EnsureAdmin second: created=%v err=%v", created, err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the existing admin")
	}

	if _, _, err := env.auth.EnsureAdmin(ctx, "", "", ""); err == nil {
		t.Fatalf("expected error for empty credentials")
	}
}
