package config

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("Expected default port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.TickSeconds != defaultTickSeconds {
		t.Errorf("Expected tick interval %d, got %d", defaultTickSeconds, cfg.TickSeconds)
	}
	if cfg.TokenTTLHours != defaultTokenTTL {
		t.Errorf("Expected token TTL %d, got %d", defaultTokenTTL, cfg.TokenTTLHours)
	}
	if cfg.DatabasePath != filepath.Join(tempDir, defaultDatabaseFile) {
		t.Errorf("Unexpected database path: %s", cfg.DatabasePath)
	}
	if cfg.JWTSecret == "" {
		t.Error("Expected a JWT secret to be generated")
	}

	// Second load reads the file written by the first.
	again, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig (reload) error: %v", err)
	}
	if again.DatabasePath != cfg.DatabasePath {
		t.Errorf("Config did not persist: got %s, want %s", again.DatabasePath, cfg.DatabasePath)
	}
}

func TestLoadConfigPortEnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("ECOCORE_PORT", "4000")

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Expected env override port 4000, got %d", cfg.Port)
	}
}
