package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageCandidates(t *testing.T) {
	assert.Equal(t, []string{"pt", "pt-BR", "en"}, languageCandidates("pt"))
	assert.Equal(t, []string{"es", "es-419", "en"}, languageCandidates("es"))
	assert.Equal(t, []string{"en", "en-US"}, languageCandidates("en"))
	assert.Equal(t, []string{"de", "en"}, languageCandidates("de"))
}

const testVTT = "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\ndinheiro dinheiro investimento"

func TestFetchTranscript_InlineData(t *testing.T) {
	provider := newFakeProvider()
	provider.subtitles["vid1"] = map[string]SubtitleTrack{
		"pt": {Language: "pt", Format: FormatVTT, Data: testVTT},
	}
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	require.True(t, result.Available())
	assert.Equal(t, "dinheiro dinheiro investimento", result.Original)
	assert.Equal(t, "pt", result.SourceLanguage)
	assert.NotEmpty(t, result.Formatted)
}

func TestFetchTranscript_PreferenceOrder(t *testing.T) {
	// Both pt-BR and en exist; pt-BR outranks en.
	provider := newFakeProvider()
	provider.subtitles["vid1"] = map[string]SubtitleTrack{
		"en":    {Language: "en", Format: FormatVTT, Data: "WEBVTT\n\nenglish text"},
		"pt-BR": {Language: "pt-BR", Format: FormatVTT, Data: "WEBVTT\n\ntexto brasileiro"},
	}
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	require.True(t, result.Available())
	assert.Equal(t, "pt-BR", result.SourceLanguage)
	assert.Equal(t, "texto brasileiro", result.Original)
}

func TestFetchTranscript_EnglishFallback(t *testing.T) {
	provider := newFakeProvider()
	provider.subtitles["vid1"] = map[string]SubtitleTrack{
		"en": {Language: "en", Format: FormatVTT, Data: "WEBVTT\n\nenglish only"},
	}
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	require.True(t, result.Available())
	assert.Equal(t, "en", result.SourceLanguage)
}

func TestFetchTranscript_FileTrackDeletedAfterDecode(t *testing.T) {
	provider := newFakeProvider()
	app, config := newTestApp(t, provider, &fakeRenderer{})
	require.NoError(t, config.EnsureStorageDirs())

	subPath := filepath.Join(config.TempSubsDir, "vid1_subtitle.pt.vtt")
	require.NoError(t, os.WriteFile(subPath, []byte(testVTT), 0644))
	provider.subtitles["vid1"] = map[string]SubtitleTrack{
		"pt": {Language: "pt", Format: FormatVTT, Filepath: subPath},
	}

	result := app.fetchTranscript(context.Background(), "vid1")
	require.True(t, result.Available())
	assert.Equal(t, "dinheiro dinheiro investimento", result.Original)
	assert.False(t, FileExists(subPath), "temp subtitle file should be removed")
}

func TestFetchTranscript_FilenameProbe(t *testing.T) {
	// The provider reports a track but neither inline data nor a path;
	// the file sits in the temp dir under the known naming pattern.
	provider := newFakeProvider()
	app, config := newTestApp(t, provider, &fakeRenderer{})
	require.NoError(t, config.EnsureStorageDirs())

	subPath := filepath.Join(config.TempSubsDir, "vid1.pt-BR.vtt")
	require.NoError(t, os.WriteFile(subPath, []byte(testVTT), 0644))
	provider.subtitles["vid1"] = map[string]SubtitleTrack{}

	result := app.fetchTranscript(context.Background(), "vid1")
	require.True(t, result.Available())
	assert.Equal(t, "pt-BR", result.SourceLanguage)
	assert.False(t, FileExists(subPath), "probed subtitle file should be removed")
}

func TestFetchTranscript_NoCaptions(t *testing.T) {
	provider := newFakeProvider()
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	require.NotNil(t, result)
	assert.False(t, result.Available())
	assert.Equal(t, TranscriptStatusUnavailable, result.Status)
}

func TestFetchTranscript_ProviderErrorYieldsAbsent(t *testing.T) {
	provider := newFakeProvider()
	provider.subtitlesErr["vid1"] = errors.New("network down")
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	require.NotNil(t, result)
	assert.False(t, result.Available())
}

func TestFetchTranscript_EmptyPayloadYieldsAbsent(t *testing.T) {
	provider := newFakeProvider()
	provider.subtitles["vid1"] = map[string]SubtitleTrack{
		"pt": {Language: "pt", Format: FormatVTT, Data: "WEBVTT\n\n"},
	}
	app, _ := newTestApp(t, provider, &fakeRenderer{})

	result := app.fetchTranscript(context.Background(), "vid1")
	assert.False(t, result.Available())
}
