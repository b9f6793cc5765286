package internal

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/psykhi/wordclouds"
	"golang.org/x/image/font/gofont/goregular"
)

// Renderer turns aggregated channel text into a word-frequency image. A
// failed render is reported as an error and must be survivable for callers.
type Renderer interface {
	Render(text, outPath string, stopwords map[string]struct{}) error
}

const (
	wordcloudWidth    = 800
	wordcloudHeight   = 400
	wordcloudMaxWords = 200
)

var wordcloudPalette = []color.Color{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x94, 0x67, 0xbd, 0xff},
	color.RGBA{0x8c, 0x56, 0x4b, 0xff},
}

// WordcloudRenderer renders PNG wordclouds. The drawing library needs a TTF
// font on disk, so the embedded Go font is materialized once under cacheDir.
type WordcloudRenderer struct {
	cacheDir string

	fontOnce sync.Once
	fontPath string
	fontErr  error
}

// NewWordcloudRenderer creates the renderer.
func NewWordcloudRenderer(cacheDir string) *WordcloudRenderer {
	return &WordcloudRenderer{cacheDir: cacheDir}
}

// ensureFont writes the embedded font file next to the cache data.
func (r *WordcloudRenderer) ensureFont() (string, error) {
	r.fontOnce.Do(func() {
		fontDir := filepath.Join(r.cacheDir, "fonts")
		if err := EnsureDirs(fontDir); err != nil {
			r.fontErr = fmt.Errorf("creating font directory: %w", err)
			return
		}
		r.fontPath = filepath.Join(fontDir, "goregular.ttf")
		if FileExists(r.fontPath) {
			return
		}
		if err := os.WriteFile(r.fontPath, goregular.TTF, 0644); err != nil {
			r.fontErr = fmt.Errorf("writing font file: %w", err)
		}
	})
	return r.fontPath, r.fontErr
}

// Render counts word frequencies in text and draws them to a PNG at outPath.
// Layout placement is randomized by the drawing library, so two renders of
// the same text need not be pixel-identical.
func (r *WordcloudRenderer) Render(text, outPath string, stopwords map[string]struct{}) error {
	frequencies := WordFrequencies(text, stopwords)
	if len(frequencies) == 0 {
		return fmt.Errorf("no words left to draw after filtering")
	}

	fontPath, err := r.ensureFont()
	if err != nil {
		return err
	}

	cloud := wordclouds.NewWordcloud(frequencies,
		wordclouds.FontFile(fontPath),
		wordclouds.FontMaxSize(96),
		wordclouds.FontMinSize(10),
		wordclouds.Colors(wordcloudPalette),
		wordclouds.BackgroundColor(color.White),
		wordclouds.Width(wordcloudWidth),
		wordclouds.Height(wordcloudHeight),
	)
	img := cloud.Draw()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating wordcloud file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding wordcloud image: %w", err)
	}
	return nil
}

// WordFrequencies tokenizes text into lowercase words and counts them,
// dropping URLs/mentions/hashtags, stopwords, and single-letter tokens. At
// most the wordcloudMaxWords most frequent words are kept.
func WordFrequencies(text string, stopwords map[string]struct{}) map[string]int {
	cleaned := strings.ToLower(CleanForAnalysis(text))

	counts := make(map[string]int)
	for _, word := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		word = strings.Trim(word, "'")
		if len([]rune(word)) < 2 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		counts[word]++
	}

	if len(counts) <= wordcloudMaxWords {
		return counts
	}

	type wordCount struct {
		word  string
		count int
	}
	ranked := make([]wordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, wordCount{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	top := make(map[string]int, wordcloudMaxWords)
	for _, wc := range ranked[:wordcloudMaxWords] {
		top[wc.word] = wc.count
	}
	return top
}
