package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/db"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/ctxutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTypeBearer = "bearer"

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type RegisterUserInput struct {
	Email          string
	Password       string
	FullName       string
	Role           types.Role
	OrganizationID *uuid.UUID
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RegisterUser(ctx context.Context, in RegisterUserInput) (*types.User, error)
	EnsureAdmin(ctx context.Context, email, password, fullName string) (*types.User, bool, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	orgRepo      repos.OrganizationRepo
	jwtSecretKey string
	accessTTL    time.Duration
	bcryptCost   int
}

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	orgRepo repos.OrganizationRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apierr.Unauthorized("invalid_credentials", "Incorrect email or password")
	}
	found, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(found) == 0 {
		return nil, apierr.Unauthorized("invalid_credentials", "Incorrect email or password")
	}
	user := found[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("invalid_credentials", "Incorrect email or password")
	}
	if !user.IsActive {
		return nil, apierr.BadRequest("inactive_user", "Inactive user")
	}

	now := time.Now().UTC()
	if err := as.userRepo.UpdateLastLogin(ctx, nil, user.ID, now); err != nil {
		as.log.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	token, err := as.generateAccessToken(user, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterUserInput) (*types.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = types.RoleAssessor
	}
	if !in.Role.Valid() {
		return nil, apierr.BadRequest("invalid_role", "Role must be admin or assessor")
	}
	if in.OrganizationID != nil {
		orgs, err := as.orgRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.OrganizationID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch organization: %w", err)
		}
		if len(orgs) == 0 {
			return nil, apierr.NotFound("organization_not_found", "Organization not found")
		}
	}
	return as.createUser(ctx, in)
}

// EnsureAdmin creates the bootstrap admin unless a user with that email
// already exists. The bool reports whether a user was created.
func (as *authService) EnsureAdmin(ctx context.Context, email, password, fullName string) (*types.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, fmt.Errorf("admin email and password are required")
	}
	found, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch admin by email: %w", err)
	}
	if len(found) > 0 {
		return found[0], false, nil
	}
	if strings.TrimSpace(fullName) == "" {
		fullName = "Administrator"
	}
	user, err := as.createUser(ctx, RegisterUserInput{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     types.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	as.log.Info("Created admin user", "user_id", user.ID)
	return user, true, nil
}

func (as *authService) createUser(ctx context.Context, in RegisterUserInput) (*types.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apierr.BadRequest("email_in_use", "Email already registered")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &types.User{
		ID:             uuid.New(),
		Email:          email,
		Password:       string(hashed),
		FullName:       strings.TrimSpace(in.FullName),
		Role:           in.Role,
		OrganizationID: in.OrganizationID,
		IsActive:       true,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.BadRequest("email_in_use", "Email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("not_authenticated", "Not authenticated")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("could not validate credentials: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized("invalid_token", "Could not validate credentials")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid_token", "Could not validate credentials")
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return ctx, fmt.Errorf("failed to fetch token user: %w", err)
	}
	if len(users) == 0 {
		return ctx, apierr.Unauthorized("invalid_token", "Could not validate credentials")
	}
	if !users[0].IsActive {
		return ctx, apierr.BadRequest("inactive_user", "Inactive user")
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        string(users[0].Role),
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User, now time.Time) (string, error) {
	if user == nil {
		return "", errors.New("user required")
	}
	claims := JWTClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
