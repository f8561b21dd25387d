package config

import (
	"testing"
)

func TestValidate_EmptyJWTSecret(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an empty jwt secret to be rejected")
	}
}

func TestValidate_ConfiguredSecret(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "a-real-secret"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
