package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
)

const secretFileName = ".ecocore_secret"

// LoadOrGenerateSecret returns the JWT signing secret. The ECOCORE_SECRET_KEY
// environment variable wins; otherwise a random secret is generated once and
// persisted in the config directory so tokens survive daemon restarts.
func LoadOrGenerateSecret(configDir string) string {
	if secret := os.Getenv("ECOCORE_SECRET_KEY"); secret != "" {
		return secret
	}

	secretPath := filepath.Join(configDir, secretFileName)

	if data, err := os.ReadFile(secretPath); err == nil && len(data) > 0 {
		return string(data)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; an empty
		// secret would sign forgeable tokens.
		panic(err)
	}
	secret := hex.EncodeToString(buf)

	_ = os.WriteFile(secretPath, []byte(secret), 0600)

	return secret
}
