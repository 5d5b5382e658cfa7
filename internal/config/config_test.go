package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "CUSTOMER", cfg.Role)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.EnableHTTPS)
	assert.Equal(t, "lauth", cfg.Token.OwnAudience)
	assert.Equal(t, "resource", cfg.Token.ResourceAudience)
	assert.Equal(t, time.Hour, cfg.Token.AccessTTL)
	assert.Equal(t, 2*time.Hour, cfg.Token.RefreshTTL)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "-4")
	t.Setenv("ROLE", "MEMBER")
	t.Setenv("STORE", "redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("TOKEN_ACCESS_TTL", "15m")
	t.Setenv("TOKEN_REFRESH_TTL", "720h")
	t.Setenv("TOKEN_KEY_ID", "key-1")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "MEMBER", cfg.Role)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 720*time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, "key-1", cfg.Token.KeyID)
}

func TestNewConfig_UnknownStore(t *testing.T) {
	t.Setenv("STORE", "cassandra")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
