package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	GitHub   GitHubConfig   `yaml:"github"`
	Sync     SyncConfig     `yaml:"sync"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // empty means the PORTFOLIOHUB_DB_PATH / home-dir default
}

type GitHubConfig struct {
	Username string        `yaml:"username"`
	Token    string        `yaml:"token"` // optional, unauthenticated calls work with stricter rate limits
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	MaxAgeHours int `yaml:"max_age_hours"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	JWTIssuer     string        `yaml:"jwt_issuer"`
	JWTDuration   time.Duration `yaml:"jwt_ttl"`
	AdminUsername string        `yaml:"admin_username"`
	AdminPassword string        `yaml:"admin_password"` // bootstrap only, hashed on first boot
}

// Load reads the yaml config at path, expanding ${ENV_VAR} references.
// A missing file is not an error: everything has a default or an env
// override, so the server can boot from environment alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORTFOLIOHUB_GITHUB_USERNAME"); v != "" {
		c.GitHub.Username = v
	}
	if v := os.Getenv("PORTFOLIOHUB_GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("PORTFOLIOHUB_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PORTFOLIOHUB_ADMIN_PASSWORD"); v != "" {
		c.Auth.AdminPassword = v
	}
	if v := os.Getenv("PORTFOLIOHUB_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
}

func (c *Config) setDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = "https://api.github.com"
	}
	if c.GitHub.Timeout == 0 {
		c.GitHub.Timeout = 15 * time.Second
	}
	if c.Sync.MaxAgeHours == 0 {
		c.Sync.MaxAgeHours = 6
	}
	if c.Auth.JWTSecret == "" {
		// dev default (change for demo / production)
		c.Auth.JWTSecret = "dev-secret-change-me"
	}
	if c.Auth.JWTIssuer == "" {
		c.Auth.JWTIssuer = "portfoliohub"
	}
	if c.Auth.JWTDuration == 0 {
		c.Auth.JWTDuration = 24 * time.Hour
	}
	if c.Auth.AdminUsername == "" {
		c.Auth.AdminUsername = "admin"
	}
}
