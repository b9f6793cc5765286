package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// subtitleFormats are the payload formats tried during the filename probe,
// in preference order.
var subtitleFormats = []string{FormatVTT, FormatSRV3}

// languageCandidates builds the ordered list of subtitle languages to try:
// the preferred language, its region variant, then English. The variant is
// part of the list because the provider is explicitly asked for it.
func languageCandidates(preferred string) []string {
	candidates := []string{preferred}
	if variant := regionVariant(preferred); variant != "" {
		candidates = append(candidates, variant)
	}
	if preferred != "en" {
		candidates = append(candidates, "en")
	}
	return candidates
}

// regionVariant maps a bare language code to its dominant region variant.
func regionVariant(lang string) string {
	switch lang {
	case "pt":
		return "pt-BR"
	case "en":
		return "en-US"
	case "es":
		return "es-419"
	default:
		return ""
	}
}

// fetchTranscript retrieves the transcript for one video, trying the
// candidate languages and payload formats in order. Missing captions yield
// the absence marker; so does any provider failure, after logging. Errors
// never propagate to the caller, so one video can never take down its
// siblings or the channel.
func (app *App) fetchTranscript(ctx context.Context, videoID string) *TranscriptResult {
	candidates := languageCandidates(app.config.PreferredLanguage)

	tracks, err := app.provider.Subtitles(ctx, videoID, candidates)
	if err != nil {
		app.log.Error().Err(err).Str("video", videoID).Msg("subtitle request failed")
		return AbsentTranscript()
	}

	text, lang := app.decodeFromTracks(videoID, tracks, candidates)
	if text == "" {
		// Last resort: the provider may have written a file without
		// reporting it. Probe the known filename patterns.
		text, lang = app.probeSubtitleFiles(videoID, candidates)
	}

	if text == "" {
		app.log.Warn().Str("video", videoID).Strs("languages", candidates).
			Msg("no transcript available")
		return AbsentTranscript()
	}

	return &TranscriptResult{
		Original:       text,
		Formatted:      FormatDisplay(text, app.config.DisplayWidth),
		SourceLanguage: lang,
	}
}

// decodeFromTracks walks the language candidates and decodes the first track
// with a usable payload. Inline data wins over a file path; a transient
// subtitle file is removed regardless of decode outcome.
func (app *App) decodeFromTracks(videoID string, tracks map[string]SubtitleTrack, candidates []string) (string, string) {
	for _, lang := range candidates {
		track, ok := tracks[lang]
		if !ok {
			continue
		}

		if track.Data != "" {
			if text := DecodeSubtitle(track.Data, track.Format); text != "" {
				return text, lang
			}
			continue
		}

		if track.Filepath != "" {
			text, err := app.decodeSubtitleFile(track.Filepath, track.Format)
			if err != nil {
				app.log.Warn().Err(err).Str("video", videoID).Str("path", track.Filepath).
					Msg("reading subtitle file failed")
				continue
			}
			if text != "" {
				return text, lang
			}
		}
	}
	return "", ""
}

// decodeSubtitleFile reads and decodes a transient subtitle file. The file
// is deleted on the way out whether or not decoding produced text.
func (app *App) decodeSubtitleFile(path, format string) (string, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			app.log.Warn().Err(err).Str("path", path).Msg("could not remove temp subtitle file")
		}
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading subtitle file: %w", err)
	}

	if format == "" {
		format = formatFromPath(path)
	}
	return DecodeSubtitle(string(raw), format), nil
}

// probeSubtitleFiles searches the temp directory for subtitle files the
// provider wrote without reporting, over languages x formats in priority
// order, short-circuiting on the first decodable hit.
func (app *App) probeSubtitleFiles(videoID string, candidates []string) (string, string) {
	template := filepath.Join(app.config.TempSubsDir, videoID+"_subtitle")
	bare := filepath.Join(app.config.TempSubsDir, videoID)

	for _, lang := range candidates {
		for _, format := range subtitleFormats {
			for _, base := range []string{template, bare} {
				path := fmt.Sprintf("%s.%s.%s", base, lang, format)
				if !FileExists(path) {
					continue
				}
				app.log.Debug().Str("video", videoID).Str("path", path).
					Msg("found subtitle file by pattern")
				text, err := app.decodeSubtitleFile(path, format)
				if err != nil {
					app.log.Warn().Err(err).Str("video", videoID).Str("path", path).
						Msg("reading probed subtitle file failed")
					continue
				}
				if text != "" {
					return text, lang
				}
			}
		}
	}
	return "", ""
}

// formatFromPath infers the subtitle format from a filename extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == FormatSRV3 {
		return FormatSRV3
	}
	return FormatVTT
}
