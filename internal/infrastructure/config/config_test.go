package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.TokenLeeway != 0 || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.LoginMaxAttempts != 5 || cfg.Auth.LoginLockoutWindow != 15*time.Minute {
		t.Fatalf("unexpected throttle defaults: %+v", cfg.Auth)
	}
	if cfg.StoreTimeout != 3*time.Second || cfg.Audit.Workers != 4 {
		t.Fatalf("unexpected defaults: store=%s workers=%d", cfg.StoreTimeout, cfg.Audit.Workers)
	}

	tc := cfg.Auth.TokenConfig()
	if string(tc.Secret) != "s3cret" || tc.TTL != time.Hour || tc.Issuer != "account-service" {
		t.Fatalf("unexpected token config: %+v", tc)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"TOKEN_TTL":    "15m",
		"TOKEN_LEEWAY": "5s",
		"ENV":          "production",
		"REDIS_DB":     "2",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.Auth.TokenTTL != 15*time.Minute || cfg.Auth.TokenLeeway != 5*time.Second {
		t.Fatalf("durations not parsed: %+v", cfg.Auth)
	}
	if cfg.IsDevelopment() || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadWith_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"zero ttl", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "0s"}, "TOKEN_TTL"},
		{"negative leeway", map[string]string{"JWT_SECRET": "x", "TOKEN_LEEWAY": "-1s"}, "TOKEN_LEEWAY"},
		{"no workers", map[string]string{"JWT_SECRET": "x", "AUDIT_WORKERS": "0"}, "AUDIT_WORKERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}
