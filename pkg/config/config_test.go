package config

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheckoutConfigParsesDecimals(t *testing.T) {
	cfg, err := NewCheckoutConfig("75.50", "4.25")
	if err != nil {
		t.Fatalf("build checkout config: %v", err)
	}
	if !cfg.FreeShippingOver().Equal(decimal.RequireFromString("75.50")) {
		t.Fatalf("threshold: %s", cfg.FreeShippingOver())
	}
	if !cfg.ShippingFee().Equal(decimal.RequireFromString("4.25")) {
		t.Fatalf("fee: %s", cfg.ShippingFee())
	}
}

func TestCheckoutConfigRejectsBadAmounts(t *testing.T) {
	if _, err := NewCheckoutConfig("free", "4.25"); err == nil {
		t.Fatalf("expected rejection of non-decimal threshold")
	}
	if _, err := NewCheckoutConfig("50", "-1"); err == nil {
		t.Fatalf("expected rejection of negative fee")
	}
}

func TestEnsureDSNBuildsFromParts(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "amara",
		Password: "p@ss/word",
		Name:     "amara_prod",
		SSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if !strings.HasPrefix(cfg.DSN, "postgres://") {
		t.Fatalf("dsn scheme: %s", cfg.DSN)
	}
	if !strings.Contains(cfg.DSN, "db.internal:5433") {
		t.Fatalf("dsn host: %s", cfg.DSN)
	}
	if !strings.Contains(cfg.DSN, "sslmode=require") {
		t.Fatalf("dsn sslmode: %s", cfg.DSN)
	}
	if strings.Contains(cfg.DSN, "p@ss/word") {
		t.Fatalf("password should be url-escaped: %s", cfg.DSN)
	}
}

func TestEnsureDSNKeepsExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://explicit"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if cfg.DSN != "postgres://explicit" {
		t.Fatalf("explicit dsn overwritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNReportsMissingParts(t *testing.T) {
	cfg := DBConfig{Host: "db.internal"}
	if err := cfg.ensureDSN(); err == nil {
		t.Fatalf("expected error for missing user and name")
	}
}

func TestJWTRefreshTokenTTL(t *testing.T) {
	cfg := JWTConfig{RefreshTokenTTLMinutes: 60}
	if cfg.RefreshTokenTTL().Minutes() != 60 {
		t.Fatalf("ttl: %s", cfg.RefreshTokenTTL())
	}
	if (JWTConfig{RefreshTokenTTLMinutes: -1}).RefreshTokenTTL() != 0 {
		t.Fatalf("negative ttl should clamp to zero")
	}
}
