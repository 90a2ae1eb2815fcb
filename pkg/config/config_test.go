package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Analytics.WindowDays)
	assert.Equal(t, "0.20,0.30", cfg.Analytics.MarginTargets)
	assert.Equal(t, "sum", cfg.Analytics.OpenObligationsMode)
	assert.Equal(t, 90, cfg.Analytics.ABCDefaultDays)
	assert.Equal(t, 5*time.Minute, cfg.Analytics.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("ANALYTICS_WINDOW_DAYS", "7")
	t.Setenv("ANALYTICS_OPEN_OBLIGATIONS_MODE", "count")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Analytics.WindowDays)
	assert.Equal(t, "count", cfg.Analytics.OpenObligationsMode)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestLoad_ModoInvalido(t *testing.T) {
	t.Setenv("ANALYTICS_OPEN_OBLIGATIONS_MODE", "avg")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestAnalyticsConfig_LoadLocation(t *testing.T) {
	loc, err := config.AnalyticsConfig{Timezone: "America/Sao_Paulo"}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	loc, err = config.AnalyticsConfig{}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = config.AnalyticsConfig{Timezone: "Marte/Olympus"}.LoadLocation()
	assert.ErrorContains(t, err, "Marte/Olympus")
}

func TestLoad_ZonaHorariaInvalidaFalla(t *testing.T) {
	t.Setenv("ANALYTICS_TIMEZONE", "Marte/Olympus")

	_, err := config.Load()
	assert.ErrorContains(t, err, "ANALYTICS_TIMEZONE")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss:w", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw@h:5432/d?sslmode=disable", c.DSN())
}
