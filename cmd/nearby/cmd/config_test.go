package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanform/nearby/internal/config"
)

func TestConfigCmd_ShowsEffectiveConfig(t *testing.T) {
	dir := chtemp(t)
	content := "search:\n  radius: 250.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	out, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "radius: 250.5")
	assert.Contains(t, out, "level: info")
}

func TestConfigCmd_InitWritesDefaults(t *testing.T) {
	dir := chtemp(t)

	out, err := runCLI(t, "config", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Search.Radius)
}

func TestConfigCmd_InitRefusesOverwrite(t *testing.T) {
	dir := chtemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("version: 1\n"), 0o644))

	_, err := runCLI(t, "config", "--init")
	assert.Error(t, err)
}
