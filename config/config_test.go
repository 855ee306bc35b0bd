package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "foodgram")
	t.Setenv("DB_PASSWORD", "dbpass")
	t.Setenv("DB_NAME", "foodgram")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "foodgram", cfg.DBUser)
	assert.Equal(t, "dbpass", cfg.DBPassword)
	assert.Equal(t, "foodgram", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "9000", cfg.ServerPort)

	// Defaults kick in for everything unset.
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.Equal(t, "/media/", cfg.MediaURL)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("secret-from-file\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("pass-from-file"), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-from-file", cfg.JWTSecret)
	assert.Equal(t, "pass-from-file", cfg.DBPassword)
}

func TestLoadConfigEnvOverridesSecret(t *testing.T) {
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "dbpass")

	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-file"), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		ServerPort: "8000",
		DBHost:     "localhost",
		DBName:     "foodgram",
		DBPassword: "pass",
		JWTSecret:  "secret",
	}
	assert.NoError(t, ValidateConfig(cfg))

	cfg.JWTSecret = ""
	assert.Error(t, ValidateConfig(cfg))
}
