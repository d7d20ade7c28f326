package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DB_NAME", "courses_test")
	t.Setenv("JWT_TTL_HOURS", "12")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "courses_test", cfg.DBName)
	assert.Equal(t, 12, cfg.JWTTTLHours)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadConfigFallsBackOnBadTTL(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, 2, cfg.JWTTTLHours)
}
