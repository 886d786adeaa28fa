package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8787", cfg.Server.Address)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "github", cfg.Plans.Driver)
	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Equal(t, "training-plan/data/training-plans.json", cfg.GitHub.FilePath)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	// No config file at all: the environment alone must supply the secrets.
	t.Setenv("REVIEW_COACH_KEY", "sekrit")
	t.Setenv("GITHUB_TOKEN", "ghp_env")
	t.Setenv("GITHUB_OWNER", "someone")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("S3_ACCESS_KEY_ID", "AKIAENV")
	t.Setenv("S3_SECRET_ACCESS_KEY", "env-secret")
	t.Setenv("STORE_DRIVER", "mongo")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sekrit", cfg.Review.CoachKey)
	assert.Equal(t, "ghp_env", cfg.GitHub.Token)
	assert.Equal(t, "someone", cfg.GitHub.Owner)
	assert.Equal(t, "AKIAENV", cfg.S3.AccessKeyID)
	assert.Equal(t, "env-secret", cfg.S3.SecretAccessKey)
	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
}

func TestLoadConfig_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "review:\n  coach_key: from-file\nserver:\n  address: \":9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("REVIEW_COACH_KEY", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// Environment wins over the file; untouched file values stay.
	assert.Equal(t, "from-env", cfg.Review.CoachKey)
	assert.Equal(t, ":9000", cfg.Server.Address)
}

func TestCORSConfig_Origins(t *testing.T) {
	assert.Empty(t, CORSConfig{}.Origins())
	assert.Empty(t, CORSConfig{AllowedOrigins: " , "}.Origins())
	assert.Equal(t, []string{"https://a.example"}, CORSConfig{AllowedOrigins: "https://a.example"}.Origins())
}
