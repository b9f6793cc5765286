package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// processChannel runs the full per-channel pipeline: resolve the latest
// uploads, fetch metadata and transcripts video by video, render the
// channel's wordcloud, and persist the record. It returns nil when the
// channel produced nothing to aggregate; any unexpected failure inside the
// pipeline is caught at this boundary and also converted to nil, so a bad
// channel never takes down the run.
func (app *App) processChannel(ctx context.Context, channelURL string) (record *ChannelRecord) {
	log := app.log.With().Str("channel", channelURL).Logger()
	log.Info().Msg("processing channel")

	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("channel processing panicked, skipping channel")
			record = nil
		}
	}()

	videos, hint, err := app.provider.LatestVideos(ctx, channelURL, app.config.VideosPerChannel)
	if err != nil {
		log.Error().Err(err).Msg("listing resolution failed, skipping channel")
		return nil
	}
	if len(videos) == 0 {
		log.Warn().Msg("no videos found, skipping channel")
		return nil
	}

	provisional := hint
	if provisional == "" {
		provisional = videos[0].ChannelHint
	}
	if provisional == "" {
		provisional = ChannelNameFromURL(channelURL)
	}
	record = NewChannelRecord(channelURL, provisional)

	var transcripts []string
	for _, video := range videos {
		entry := app.processVideo(ctx, record, video)
		record.Videos = append(record.Videos, entry)
		if entry.Transcript.Available() {
			transcripts = append(transcripts, entry.Transcript.Original)
		}
	}

	if len(transcripts) > 0 {
		app.renderChannelWordcloud(record, strings.Join(transcripts, "\n"))
	} else {
		log.Info().Str("name", record.ChannelName).Msg("no transcripts available, skipping wordcloud")
	}

	if err := app.store.SaveChannelRecord(record); err != nil {
		log.Error().Err(err).Str("name", record.ChannelName).Msg("saving channel record failed")
	}

	log.Info().Str("name", record.ChannelName).
		Int("videos", len(record.Videos)).
		Int("transcripts", record.TranscriptCount()).
		Msg("channel done")
	return record
}

// processVideo fetches one video's metadata and transcript. Metadata
// failures leave the optional fields empty and never abort the channel.
func (app *App) processVideo(ctx context.Context, record *ChannelRecord, video VideoSummary) ProcessedVideo {
	log := app.log.With().Str("video", video.ID).Logger()
	log.Info().Str("title", video.Title).Msg("processing video")

	entry := ProcessedVideo{
		ID:    video.ID,
		Title: video.Title,
		URL:   video.URL,
	}

	details, err := app.provider.Metadata(ctx, video.URL)
	if err != nil {
		log.Warn().Err(err).Msg("metadata fetch failed, continuing without details")
	} else {
		entry.PublishDate = details.PublishDate
		entry.ViewCount = details.ViewCount
		if record.FinalizeName(details.Uploader) {
			log.Debug().Str("name", details.Uploader).Msg("channel name finalized")
		}
	}

	entry.Transcript = app.fetchTranscript(ctx, video.ID)
	if entry.Transcript.Available() {
		entry.TranscriptLanguage = entry.Transcript.SourceLanguage
	}
	return entry
}

// renderChannelWordcloud asks the renderer for the channel's artifact and
// records its data-dir-relative path on success. Renderer failures are
// logged and leave the path empty; they never fail the channel.
func (app *App) renderChannelWordcloud(record *ChannelRecord, text string) {
	filename := fmt.Sprintf("wc_%s.png", SanitizeFilename(record.ChannelName))
	outPath := filepath.Join(app.config.WordcloudsDir, filename)

	if err := EnsureDirs(app.config.WordcloudsDir); err != nil {
		app.log.Error().Err(err).Msg("creating wordclouds directory failed")
		return
	}

	if err := app.renderer.Render(text, outPath, app.stopwords); err != nil {
		app.log.Error().Err(err).Str("name", record.ChannelName).Msg("wordcloud generation failed")
		return
	}

	record.WordcloudPath = filepath.Join("wordclouds", filename)
	app.log.Info().Str("path", record.WordcloudPath).Msg("wordcloud generated")
}
