package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{
		Postgres:       &PostgresConfig{Host: "localhost"},
		JWT:            &JWTConfig{},
		ProfileService: &ProfileServiceConfig{BaseURL: "http://profiles:8080"},
	}

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, "myapp/authservice", cfg.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "ROLE_USER", cfg.Auth.DefaultRole)
	assert.Equal(t, 2*time.Second, cfg.ProfileService.Timeout)
	assert.Equal(t, uint(3), cfg.ProfileService.Resilience.MaxAttempts)
	assert.InDelta(t, 0.5, cfg.ProfileService.Resilience.FailureRateThreshold, 1e-9)
	assert.Equal(t, 10*time.Minute, cfg.Cleanup.Interval)
	assert.Equal(t, "100KB", cfg.HTTP.MaxRequestBodySize)
}

func TestApplyDefaults_RequiresProfileService(t *testing.T) {
	cfg := &Config{Postgres: &PostgresConfig{}, JWT: &JWTConfig{}}

	assert.Error(t, cfg.applyDefaults())
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
env:
  serviceName: authcore
jwt:
  issuer: myapp/authservice
  accessTtl: 15m
profileService:
  baseUrl: http://profiles:8080
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yaml, 0o600))
	t.Setenv("JWT_ACCESSTTL", "30m")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[Config]("test", rel)
	require.NoError(t, err)

	assert.Equal(t, "authcore", cfg.Env.ServiceName)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "http://profiles:8080", cfg.ProfileService.BaseURL)
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := &PostgresConfig{Host: "db", Port: "5432", UserName: "u", Password: "p", Database: "auth"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=auth sslmode=disable", p.DSN())
}
