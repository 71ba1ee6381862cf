package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/conteo-api/pkg/config"
)

func TestLoad_LogLevelPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_LogLevelDesdeEnv(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_DSNDesdeComponentes(t *testing.T) {
	t.Setenv("DB_HOST", "db.interna")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "conteo")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_NAME", "conteo")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := config.Load()
	require.NoError(t, err)

	dsn := cfg.DB.ConnectionString()
	assert.Contains(t, dsn, "db.interna:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// La contraseña con caracteres especiales debe ir URL-encoded.
	assert.Contains(t, dsn, "p%40ss%3Aword")
}

func TestLoad_DatabaseURLTienePrioridad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@remoto:5432/conteo?sslmode=require")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@remoto:5432/conteo?sslmode=require", cfg.DB.ConnectionString())
}
