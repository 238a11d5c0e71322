package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Receitario", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.SettingsTTL)
	assert.Equal(t, 30*time.Second, cfg.Webhooks.Timeout)
	assert.Equal(t, 5*time.Second, cfg.AI.VideoPollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Import.ItemDelay)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "mongodb"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresJWTSecretInProduction(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "segredo-bem-longo"
	assert.NoError(t, cfg.Validate())
}

func TestValidateClampsImportDelay(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Import.ItemDelay = 50 * time.Millisecond
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 500*time.Millisecond, cfg.Import.ItemDelay)
}
