package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/amara-cosmetics/amara-backend/pkg/auth"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

type fakeSessionChecker struct {
	active bool
	err    error
	seen   string
}

func (f *fakeSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	f.seen = accessID
	return f.active, f.err
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-secret",
		Issuer:            "amara",
		ExpirationMinutes: 15,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role enums.UserRole, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := authTestConfig()
	userID := uuid.New()
	checker := &fakeSessionChecker{active: true}

	var gotUserID, gotRole string
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, userID, enums.UserRoleCustomer, "jti-42"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != userID.String() {
		t.Fatalf("user id not seeded: %q", gotUserID)
	}
	if gotRole != string(enums.UserRoleCustomer) {
		t.Fatalf("role not seeded: %q", gotRole)
	}
	if checker.seen != "jti-42" {
		t.Fatalf("session checked with wrong jti: %q", checker.seen)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(authTestConfig(), &fakeSessionChecker{active: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGarbageToken(t *testing.T) {
	handler := Auth(authTestConfig(), &fakeSessionChecker{active: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRevokedSession(t *testing.T) {
	cfg := authTestConfig()
	handler := Auth(cfg, &fakeSessionChecker{active: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, uuid.New(), enums.UserRoleCustomer, "revoked"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}
}

func TestRequireRoleBlocksMismatch(t *testing.T) {
	handler := RequireRole("admin", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleCustomer)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on admin route, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleAdmin)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through for admin, got %d", rec.Code)
	}
}
