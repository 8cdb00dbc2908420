// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(500), cfg.Platform.FeeCapBps)
	assert.Equal(t, uint64(50_000_000_000), cfg.Platform.MinWithdraw)
	assert.False(t, cfg.AWS.ForcePathStyle)
}

func TestLoadForcePathStyle(t *testing.T) {
	t.Setenv("AWS_S3_FORCE_PATH_STYLE", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AWS.ForcePathStyle)
}

func TestLoadInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("AWS_S3_FORCE_PATH_STYLE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AWS.ForcePathStyle)
}
