package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("WORKER_CONCURRENCY", "")
	t.Setenv("CHAT_REQUIRE_MEMBERSHIP", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.WorkerConcurrency)
	assert.False(t, cfg.RequireMembership)
}

func TestLoadRenderHostRequiresTLS(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "dpg-abc.oregon-postgres.render.com")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL_HOURS", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("CHAT_REQUIRE_MEMBERSHIP", "maybe")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("CHAT_REQUIRE_MEMBERSHIP", "")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}
