package internal

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordFrequencies(t *testing.T) {
	stopwords := map[string]struct{}{"de": {}, "para": {}}
	freqs := WordFrequencies("dinheiro dinheiro investimento de para x", stopwords)

	assert.Equal(t, 2, freqs["dinheiro"])
	assert.Equal(t, 1, freqs["investimento"])
	assert.NotContains(t, freqs, "de")
	assert.NotContains(t, freqs, "para")
	// Single-letter tokens are noise.
	assert.NotContains(t, freqs, "x")
}

func TestWordFrequencies_CaseFoldsAndCleans(t *testing.T) {
	freqs := WordFrequencies("Dinheiro DINHEIRO https://example.com @canal #tag", nil)
	assert.Equal(t, 2, freqs["dinheiro"])
	assert.NotContains(t, freqs, "example")
	assert.NotContains(t, freqs, "canal")
	assert.NotContains(t, freqs, "tag")
}

func TestWordFrequencies_CapsVocabulary(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		// 300 distinct words, each with a distinct count.
		word := fmt.Sprintf("palavra%c%c", 'a'+i/26, 'a'+i%26)
		for j := 0; j <= i; j++ {
			sb.WriteString(word)
			sb.WriteByte(' ')
		}
	}
	freqs := WordFrequencies(sb.String(), nil)
	assert.LessOrEqual(t, len(freqs), wordcloudMaxWords)
}

func TestWordFrequencies_Empty(t *testing.T) {
	assert.Empty(t, WordFrequencies("", nil))
	assert.Empty(t, WordFrequencies("de de de", map[string]struct{}{"de": {}}))
}

func TestRender_WritesDecodablePNG(t *testing.T) {
	dir := t.TempDir()
	renderer := NewWordcloudRenderer(filepath.Join(dir, "cache"))
	outPath := filepath.Join(dir, "wc_canal.png")

	err := renderer.Render("dinheiro dinheiro investimento", outPath, map[string]struct{}{})
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, wordcloudWidth, bounds.Dx())
	assert.Equal(t, wordcloudHeight, bounds.Dy())
}

func TestRender_NothingToDraw(t *testing.T) {
	dir := t.TempDir()
	renderer := NewWordcloudRenderer(dir)
	outPath := filepath.Join(dir, "wc.png")

	err := renderer.Render("de de de", outPath, map[string]struct{}{"de": {}})
	require.Error(t, err)
	assert.False(t, FileExists(outPath))
}

func TestEnsureFont_WrittenOnce(t *testing.T) {
	dir := t.TempDir()
	renderer := NewWordcloudRenderer(dir)

	first, err := renderer.ensureFont()
	require.NoError(t, err)
	assert.True(t, FileExists(first))

	info, err := os.Stat(first)
	require.NoError(t, err)

	second, err := renderer.ensureFont()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := os.Stat(first)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}
