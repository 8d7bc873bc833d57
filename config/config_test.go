package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdirTemp moves into an empty directory so no config.yaml or .env is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg := Load(zap.NewNop())

	assert.Equal(t, 0.85, cfg.SimhashSimThreshold)
	assert.Equal(t, 15, cfg.MaxRecent)
	assert.Equal(t, 7*24*time.Hour, cfg.TemplateCooldown())
	assert.Equal(t, 30*24*time.Hour, cfg.ExactComboWindow())
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SIMHASH_SIM_THRESHOLD", "0.9")
	t.Setenv("MAX_RECENT", "5")
	t.Setenv("TEMPLATE_COOLDOWN_MS", "60000")
	t.Setenv("EXACT_COMBO_BLOCK_DAYS", "2")
	t.Setenv("MAX_ATTEMPTS", "7")
	t.Setenv("CLEANUP_INTERVAL", "5")

	cfg := Load(zap.NewNop())

	assert.Equal(t, 0.9, cfg.SimhashSimThreshold)
	assert.Equal(t, 5, cfg.MaxRecent)
	assert.Equal(t, time.Minute, cfg.TemplateCooldown())
	assert.Equal(t, 48*time.Hour, cfg.ExactComboWindow())
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SIMHASH_SIM_THRESHOLD", "1.5")
	t.Setenv("MAX_RECENT", "-1")
	t.Setenv("MAX_ATTEMPTS", "-3")

	cfg := Load(zap.NewNop())

	assert.Equal(t, 0.85, cfg.SimhashSimThreshold)
	assert.Equal(t, 15, cfg.MaxRecent)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestLoadDotEnv(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("MAX_ATTEMPTS=4\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("MAX_ATTEMPTS") })

	cfg := Load(zap.NewNop())
	assert.Equal(t, 4, cfg.MaxAttempts)
}

func TestInitLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warning", "error", "bogus", ""} {
		logger, err := InitLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger)
	}
	Cleanup()
}
