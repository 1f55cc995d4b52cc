package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "amara",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := tokenConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleCustomer,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("jti mismatch: %s", claims.ID)
	}
}

func TestMintGeneratesJTIWhenBlank(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := ParseAccessToken(tokenConfig(), token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("expected generated jti")
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("generated jti should be a uuid: %v", err)
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	_, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("root"),
	})
	if err == nil {
		t.Fatalf("expected rejection of unknown role")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := tokenConfig()
	issuedAt := time.Now().UTC().Add(-time.Hour)

	token, err := MintAccessToken(cfg, issuedAt, AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
		JTI:    "expired-jti",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected expired token rejection")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("allow-expired parse: %v", err)
	}
	if claims.ID != "expired-jti" {
		t.Fatalf("expected jti from expired token, got %q", claims.ID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := tokenConfig()
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected signature mismatch rejection")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := tokenConfig()
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected issuer mismatch rejection")
	}
}
