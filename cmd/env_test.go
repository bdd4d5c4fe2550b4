package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_ReadsOverrides(t *testing.T) {
	t.Setenv("MATCHSIM_SEED", "7")
	t.Setenv("MATCHSIM_LOG_LEVEL", "debug")
	t.Setenv("MATCHSIM_STORE", "sqlite")
	t.Setenv("MATCHSIM_STORE_PATH", "/tmp/h.db")

	e, err := loadEnv()

	require.NoError(t, err)
	require.NotNil(t, e.Seed)
	assert.Equal(t, int64(7), *e.Seed)
	assert.Equal(t, "debug", e.LogLevel)
	assert.Equal(t, "sqlite", e.Store)
	assert.Equal(t, "/tmp/h.db", e.StorePath)
}

func TestLoadEnv_UnsetSeedStaysNil(t *testing.T) {
	t.Setenv("MATCHSIM_SEED", "")
	require.NoError(t, os.Unsetenv("MATCHSIM_SEED"))

	e, err := loadEnv()

	require.NoError(t, err)
	assert.Nil(t, e.Seed)
}

func TestLoadEnv_BadSeed(t *testing.T) {
	t.Setenv("MATCHSIM_SEED", "forty-two")

	_, err := loadEnv()

	assert.Error(t, err)
}
