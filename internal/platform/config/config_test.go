package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMemoryDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 4, cfg.AggregateWorkers)
	assert.False(t, cfg.UseAMQP())
}

func TestLoadConfigRejects(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	viper.Reset()
	t.Setenv("STORAGE", "sqlite")
	_, err = LoadConfig()
	assert.Error(t, err)

	viper.Reset()
	t.Setenv("STORAGE", "memory")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}
