package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultConfigName   = "config.json"
	defaultDatabaseFile = "ecocore.db"
	defaultPort         = 3000
	defaultTickSeconds  = 5
	defaultTokenTTL     = 24
)

type Config struct {
	DatabasePath  string `json:"database_path"`
	Port          int    `json:"port"`
	TickSeconds   int    `json:"tick_interval_seconds"`
	TokenTTLHours int    `json:"token_ttl_hours"`
	JWTSecret     string `json:"-"`
}

// Dir returns the per-user configuration directory for the daemon and CLI.
func Dir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appName := "ecocore"
	if IsDev() {
		appName = "ecocore-dev"
	}
	return filepath.Join(userConfigDir, appName), nil
}

func IsDev() bool {
	return os.Getenv("ECOCORE_DEV") != ""
}

func LoadConfig(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, defaultConfigName)

	var cfg *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg, err = createDefaultConfig(configPath, configDir)
		if err != nil {
			return nil, err
		}
	} else {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = &Config{}
		if err := json.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.TickSeconds <= 0 {
		cfg.TickSeconds = defaultTickSeconds
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = defaultTokenTTL
	}

	if portStr := os.Getenv("ECOCORE_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}

	cfg.JWTSecret = LoadOrGenerateSecret(configDir)

	return cfg, nil
}

func createDefaultConfig(configPath, configDir string) (*Config, error) {
	cfg := Config{
		DatabasePath:  filepath.Join(configDir, defaultDatabaseFile),
		Port:          defaultPort,
		TickSeconds:   defaultTickSeconds,
		TokenTTLHours: defaultTokenTTL,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return nil, err
	}

	return &cfg, nil
}
