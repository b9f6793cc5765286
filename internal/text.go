package internal

import (
	"regexp"
	"strings"
)

var (
	urlRe      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionRe  = regexp.MustCompile(`@\w+`)
	hashtagRe  = regexp.MustCompile(`#\w+`)
	unsafeRe   = regexp.MustCompile(`[<>:"/\\|?*]`)
	nonFileRe  = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// FormatDisplay wraps text into lines of at most width characters,
// preserving word boundaries. Words longer than width stand on their own
// line. Blank input yields the empty string.
func FormatDisplay(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width < 1 {
		width = 70
	}

	words := strings.Fields(text)
	var sb strings.Builder
	lineLen := 0
	for _, word := range words {
		switch {
		case lineLen == 0:
			sb.WriteString(word)
			lineLen = len(word)
		case lineLen+1+len(word) <= width:
			sb.WriteByte(' ')
			sb.WriteString(word)
			lineLen += 1 + len(word)
		default:
			sb.WriteByte('\n')
			sb.WriteString(word)
			lineLen = len(word)
		}
	}
	return sb.String()
}

// CleanForAnalysis strips URL, @mention, and #hashtag tokens so they never
// show up in word frequencies.
func CleanForAnalysis(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = mentionRe.ReplaceAllString(text, "")
	text = hashtagRe.ReplaceAllString(text, "")
	return text
}

// SanitizeFilename makes a channel name safe to use as a filename: invalid
// path characters become underscores, anything outside [a-zA-Z0-9_.-] too,
// and the result is capped at 100 bytes.
func SanitizeFilename(name string) string {
	name = unsafeRe.ReplaceAllString(name, "_")
	name = nonFileRe.ReplaceAllString(name, "_")
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
