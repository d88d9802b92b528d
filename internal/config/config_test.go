package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DB_PASSWORD", "postgres")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Submit.Cooldown)
	assert.Equal(t, 12*time.Hour, cfg.Anomaly.SessionTTL)
	assert.False(t, cfg.Anomaly.KeepBaselineOnSuspicious)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_RESTDriverRequiresBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "rest")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HRIS_API_BASE_URL")

	t.Setenv("HRIS_API_BASE_URL", "http://hris.internal/api/v1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverREST, cfg.Store.Driver)
	assert.Equal(t, 15*time.Second, cfg.HRISAPI.Timeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"DB_PORT":                             "abc",
		"SUBMIT_COOLDOWN":                     "soon",
		"ANOMALY_KEEP_BASELINE_ON_SUSPICIOUS": "maybe",
		"STORE_DRIVER":                        "mongo",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "app", Password: "pw", Name: "att", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:pw@db:5433/att?sslmode=disable", cfg.DatabaseURL())
}
