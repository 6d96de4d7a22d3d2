package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sestinj/amicable/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoConfigInit_WritesDefaults(t *testing.T) {
	t.Setenv("AMICABLE_LIMIT", "")
	t.Setenv("AMICABLE_WORKERS", "")
	t.Setenv("AMICABLE_NO_CACHE", "")
	e, stdout, _ := testEnv(t)
	path := filepath.Join(t.TempDir(), "amicable", "config.yaml")

	require.NoError(t, e.doConfigInit(path, false))

	assert.Equal(t, path+"\n", stdout.String())
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestDoConfigInit_RefusesOverwrite(t *testing.T) {
	e, _, _ := testEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limit: 284\n"), 0644))

	err := e.doConfigInit(path, false)
	assert.ErrorContains(t, err, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "limit: 284\n", string(data))
}

func TestDoConfigInit_ForceReplacesBrokenFile(t *testing.T) {
	t.Setenv("AMICABLE_LIMIT", "")
	t.Setenv("AMICABLE_WORKERS", "")
	t.Setenv("AMICABLE_NO_CACHE", "")
	e, _, _ := testEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limit: [oops\n"), 0644))

	require.NoError(t, e.doConfigInit(path, true))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLimit, cfg.Limit)
}
