package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 6, cfg.Sync.MaxAgeHours)
	assert.Equal(t, "portfoliohub", cfg.Auth.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTDuration)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
http:
  addr: ":9090"
database:
  path: /tmp/portfolio.db
github:
  username: octocat
  timeout: 5s
sync:
  max_age_hours: 12
auth:
  jwt_secret: yaml-secret
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "/tmp/portfolio.db", cfg.Database.Path)
	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 12, cfg.Sync.MaxAgeHours)
	assert.Equal(t, "yaml-secret", cfg.Auth.JWTSecret)
	// untouched fields still get defaults
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
github:
  username: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("PORTFOLIOHUB_GITHUB_USERNAME", "from-env")
	t.Setenv("PORTFOLIOHUB_HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GitHub.Username)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoadExpandsEnvRefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
github:
  token: ${TEST_GH_TOKEN}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("TEST_GH_TOKEN", "ghp_example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", cfg.GitHub.Token)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
