package internal

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ParseStopwords reads a stopword list: one word per line, blank lines and
// # comments ignored, everything lowercased.
func ParseStopwords(raw string) map[string]struct{} {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	return words
}

// LoadStopwords loads the stopword list from the config directory, falling
// back to the embedded default when the user has no copy yet.
func LoadStopwords(configDir string) map[string]struct{} {
	path := filepath.Join(configDir, "stopwords_pt.txt")
	if data, err := os.ReadFile(path); err == nil {
		return ParseStopwords(string(data))
	}

	data, err := defaultFS.ReadFile("stopwords_pt.txt")
	if err != nil {
		return map[string]struct{}{}
	}
	return ParseStopwords(string(data))
}
