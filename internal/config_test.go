package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultConfig(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "tubecloud")

	require.NoError(t, EnsureDefaultConfig(configDir))
	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "preferred_language")
	assert.Contains(t, string(data), "channels")

	// A user-edited file is left alone.
	custom := []byte("channels = []\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), custom, 0644))
	require.NoError(t, EnsureDefaultConfig(configDir))
	data, err = os.ReadFile(filepath.Join(configDir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestEnsureDefaultStopwords(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "tubecloud")

	require.NoError(t, EnsureDefaultStopwords(configDir))
	data, err := os.ReadFile(filepath.Join(configDir, "stopwords_pt.txt"))
	require.NoError(t, err)
	assert.NotEmpty(t, ParseStopwords(string(data)))
}

func TestConfigDerivedDirs(t *testing.T) {
	config := TestConfig(t.TempDir())

	assert.Equal(t, filepath.Join(config.DataDir, "transcripts"), config.TranscriptsDir)
	assert.Equal(t, filepath.Join(config.DataDir, "reports"), config.ReportsDir)
	assert.Equal(t, filepath.Join(config.DataDir, "wordclouds"), config.WordcloudsDir)
	assert.Equal(t, filepath.Join(config.DataDir, "logs"), config.LogsDir)
	assert.Equal(t, filepath.Join(config.CacheDir, "temp_subs"), config.TempSubsDir)

	require.NoError(t, config.EnsureStorageDirs())
	for _, dir := range []string{config.TranscriptsDir, config.ReportsDir, config.WordcloudsDir, config.LogsDir, config.TempSubsDir} {
		assert.DirExists(t, dir)
	}
}

func TestRunTimestamp(t *testing.T) {
	ts := RunTimestamp(time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC))
	assert.Equal(t, "20260829_143005", ts)
}
