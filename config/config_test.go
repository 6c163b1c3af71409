package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.CooldownWindow)
	assert.Equal(t, 200, cfg.FetchLimit)
	assert.Equal(t, AccessModeSecret, cfg.Access.Mode)
	assert.False(t, cfg.Push.Configured())
	assert.False(t, cfg.Sheet.Configured())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COOLDOWN_WINDOW", "2m")
	t.Setenv("ACCESS_MODE", "session")
	t.Setenv("PUSH_APP_ID", "app")
	t.Setenv("PUSH_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.CooldownWindow)
	assert.Equal(t, AccessModeSession, cfg.Access.Mode)
	assert.True(t, cfg.Push.Configured())
}

func TestLoadRejectsUnknownAccessMode(t *testing.T) {
	t.Setenv("ACCESS_MODE", "open-sesame")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveFetchLimit(t *testing.T) {
	t.Setenv("FETCH_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)
}
