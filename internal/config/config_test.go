package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_EmptyAllowedOrigins(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.AllowedOrigins = []string{}

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for empty CORS_ALLOWED_ORIGINS")
	}
	if !strings.Contains(err.Error(), "CORS_ALLOWED_ORIGINS") {
		t.Errorf("expected error to mention CORS_ALLOWED_ORIGINS, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_InvalidJWTExpiration(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.ExpirationMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero JWT_EXPIRATION_MINS")
	}
	if !strings.Contains(err.Error(), "JWT_EXPIRATION_MINS") {
		t.Errorf("expected error to mention JWT_EXPIRATION_MINS, got: %v", err)
	}
}

func TestConfig_Validate_ProductionRequiresJWTKeys(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.JWT.PrivateKeyPath = ""
	cfg.JWT.PublicKeyPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing JWT keys in production")
	}
	if !strings.Contains(err.Error(), "JWT_PRIVATE_KEY_PATH") {
		t.Errorf("expected error to mention JWT_PRIVATE_KEY_PATH, got: %v", err)
	}
	if !strings.Contains(err.Error(), "JWT_PUBLIC_KEY_PATH") {
		t.Errorf("expected error to mention JWT_PUBLIC_KEY_PATH, got: %v", err)
	}
}

func TestConfig_Validate_PushEnabledRequiresVAPIDKeys(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Push.Enabled = true
	cfg.Push.VAPIDPrivateKey = ""
	cfg.Push.VAPIDPublicKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error when push enabled without VAPID keys")
	}
	if !strings.Contains(err.Error(), "VAPID_PRIVATE_KEY") {
		t.Errorf("expected error to mention VAPID_PRIVATE_KEY, got: %v", err)
	}
}

func TestConfig_Validate_PushDisabledNoVAPIDRequired(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Push.Enabled = false
	cfg.Push.VAPIDPrivateKey = ""
	cfg.Push.VAPIDPublicKey = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error when push disabled, got: %v", err)
	}
}

func TestConfig_Validate_InvalidServerLimit(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Limits.MaxServersPerUser = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero LIMIT_MAX_SERVERS_PER_USER")
	}
	if !strings.Contains(err.Error(), "LIMIT_MAX_SERVERS_PER_USER") {
		t.Errorf("expected error to mention LIMIT_MAX_SERVERS_PER_USER, got: %v", err)
	}
}

func TestConfig_Validate_GroupSizeTooSmall(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Limits.MaxGroupSize = 1

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for LIMIT_MAX_GROUP_SIZE below 2")
	}
	if !strings.Contains(err.Error(), "LIMIT_MAX_GROUP_SIZE") {
		t.Errorf("expected error to mention LIMIT_MAX_GROUP_SIZE, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           "",
			Env:            "invalid",
			AllowedOrigins: []string{},
		},
		Database: DatabaseConfig{
			Host: "",
		},
		JWT: JWTConfig{
			ExpirationMins: 0,
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("expected multiple validation errors")
	}

	errStr := err.Error()
	expectedFields := []string{"SERVER_PORT", "SERVER_ENV", "CORS_ALLOWED_ORIGINS", "DB_HOST", "JWT_EXPIRATION_MINS", "LIMIT_MAX_SERVERS_PER_USER"}
	for _, field := range expectedFields {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false in production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	cfg.Server.Env = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false in development")
	}
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "haven",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
		JWT: JWTConfig{
			PrivateKeyPath: "./keys/private.pem",
			PublicKeyPath:  "./keys/public.pem",
			ExpirationMins: 15,
			Issuer:         "haven.forgo.software",
		},
		Push: PushConfig{
			Enabled: false,
		},
		Limits: LimitsConfig{
			MaxServersPerUser: 100,
			MaxGroupSize:      50,
		},
	}
}
