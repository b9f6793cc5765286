package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelNameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/@MePoupe/videos":            "MePoupe",
		"https://www.youtube.com/@MePoupe":                   "MePoupe",
		"https://www.youtube.com/c/EconoMirna/videos":        "EconoMirna",
		"https://www.youtube.com/user/primorico/videos":      "primorico",
		"https://www.youtube.com/channel/UCabc123/videos":    "UCabc123",
		"https://www.youtube.com/@O%20Primo%20Rico/videos":   "O Primo Rico",
	}
	for url, want := range cases {
		assert.Equal(t, want, ChannelNameFromURL(url), "url %s", url)
	}
}

func TestChannelNameFromURL_Fallbacks(t *testing.T) {
	// Nothing usable in the path: hand back the input.
	assert.Equal(t, "https://www.youtube.com/", ChannelNameFromURL("https://www.youtube.com/"))
	assert.Equal(t, "://bad url", ChannelNameFromURL("://bad url"))
}

func TestEnsureDirsAndFileExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	assert.False(t, FileExists(nested))
	require.NoError(t, EnsureDirs(nested))
	assert.True(t, FileExists(nested))

	// Idempotent.
	require.NoError(t, EnsureDirs(nested))
}

func TestCleanupTempDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "temp_subs")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid1.pt.vtt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid2.en.srv3"), []byte("x"), 0644))

	require.NoError(t, CleanupTempDir(dir))
	assert.False(t, FileExists(dir))
}

func TestCleanupTempDir_MissingDir(t *testing.T) {
	assert.NoError(t, CleanupTempDir(filepath.Join(t.TempDir(), "never_made")))
}
