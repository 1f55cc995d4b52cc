package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/amara-cosmetics/amara-backend/pkg/auth"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
	"github.com/amara-cosmetics/amara-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "amara",
		ExpirationMinutes: 30,
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubUserRepo, *stubSessionManager) {
	t.Helper()
	userRepo := &stubUserRepo{user: user}
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionMgr,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, userRepo, sessionMgr
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func testUser(t *testing.T, password string, role enums.UserRole) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "Ada Achieng",
		Role:         role,
		IsActive:     true,
	}
}

func TestServiceRegisterIssuesCustomerToken(t *testing.T) {
	svc, userRepo, _ := buildTestService(t, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New@Example.COM ",
		Password: "str0ng-pass",
		FullName: " Ada Achieng ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if userRepo.created == nil {
		t.Fatalf("expected user to be persisted")
	}
	if userRepo.created.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", userRepo.created.Email)
	}
	if userRepo.created.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", userRepo.created.Role)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := buildTestService(t, testUser(t, "correct-horse", enums.UserRoleCustomer))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "battery-staple",
	})
	if err == nil {
		t.Fatalf("expected login failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := buildTestService(t, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginInactiveUser(t *testing.T) {
	user := testUser(t, "str0ng-pass", enums.UserRoleCustomer)
	user.IsActive = false
	svc, _, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "str0ng-pass",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginRecordsLastLogin(t *testing.T) {
	user := testUser(t, "str0ng-pass", enums.UserRoleCustomer)
	svc, userRepo, _ := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ADA@example.com",
		Password: "str0ng-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if userRepo.lastLoginID != user.ID {
		t.Fatalf("expected last login recorded for %s, got %s", user.ID, userRepo.lastLoginID)
	}
	if resp.User.Email != user.Email {
		t.Fatalf("expected profile in response, got %+v", resp.User)
	}
}

func TestServiceAdminLoginRejectsCustomer(t *testing.T) {
	svc, _, _ := buildTestService(t, testUser(t, "str0ng-pass", enums.UserRoleCustomer))

	_, err := svc.AdminLogin(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "str0ng-pass",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for customer on admin login, got %v", err)
	}
}

func TestServiceAdminLoginAllowsAdmin(t *testing.T) {
	svc, _, _ := buildTestService(t, testUser(t, "str0ng-pass", enums.UserRoleAdmin))

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "str0ng-pass",
	})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	accessToken, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleCustomer,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc, _, sessionMgr := buildTestService(t, nil)
	sessionMgr.rotatedAccessID = "new-access-id"
	sessionMgr.rotatedRefresh = "new-refresh"

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "old-refresh",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sessionMgr.rotateCalledWith != "old-access-id" {
		t.Fatalf("expected rotation keyed on old jti, got %q", sessionMgr.rotateCalledWith)
	}
	if pair.RefreshToken != "new-refresh" {
		t.Fatalf("expected rotated refresh token, got %q", pair.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse new access token: %v", err)
	}
	if claims.ID != "new-access-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
	if claims.UserID != userID {
		t.Fatalf("expected same user id, got %s", claims.UserID)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, _, sessionMgr := buildTestService(t, nil)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessionMgr.revokedAccessID != "access-id" {
		t.Fatalf("expected revoke for access-id, got %q", sessionMgr.revokedAccessID)
	}

	err := svc.Logout(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank access id, got %v", err)
	}
}

type stubUserRepo struct {
	user        *models.User
	created     *models.User
	lastLoginID uuid.UUID
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New()
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginID = id
	return nil
}

type stubSessionManager struct {
	refreshToken     string
	rotatedAccessID  string
	rotatedRefresh   string
	rotateCalledWith string
	revokedAccessID  string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	s.rotateCalledWith = oldAccessID
	return s.rotatedAccessID, s.rotatedRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revokedAccessID = accessID
	return nil
}
