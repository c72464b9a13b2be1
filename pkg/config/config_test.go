package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://yatube@localhost:5432/yatube")
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "yatube", cfg.MongoDatabase)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
}

func TestLoadRequiresPostgres(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "")

	_, err := Load()
	assert.ErrorContains(t, err, "POSTGRES_CONN_STR")
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://yatube@localhost:5432/yatube")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "0f1e2d3c")
	t.Setenv("JWT_TTL_HOURS", "12")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
}
