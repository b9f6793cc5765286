package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// SubtitleTrack is one subtitle variant offered by the provider. Exactly one
// of Data (inline payload) or Filepath (file written by the provider) is
// normally set; both may be empty, in which case the retriever probes the
// temp directory by filename pattern.
type SubtitleTrack struct {
	Language string
	Format   string
	Data     string
	Filepath string
}

// Provider is the external video/subtitle retrieval boundary. All methods
// may fail or return partial data; callers isolate those failures.
type Provider interface {
	// LatestVideos resolves a channel's most recent uploads, newest first.
	LatestVideos(ctx context.Context, channelURL string, count int) ([]VideoSummary, string, error)
	// Metadata fetches per-video details.
	Metadata(ctx context.Context, videoURL string) (*VideoDetails, error)
	// Subtitles requests human and auto-generated subtitle tracks for the
	// given languages, keyed by language code.
	Subtitles(ctx context.Context, videoID string, langs []string) (map[string]SubtitleTrack, error)
}

// YTDLP implements Provider on top of the yt-dlp binary.
type YTDLP struct {
	tempSubsDir string
	verbose     bool
}

// NewYTDLP creates the yt-dlp backed provider. Transient subtitle files are
// written under tempSubsDir.
func NewYTDLP(tempSubsDir string, verbose bool) *YTDLP {
	return &YTDLP{tempSubsDir: tempSubsDir, verbose: verbose}
}

// subtitleOutputTemplate mirrors the filename convention the retriever
// probes when yt-dlp does not report where it wrote a subtitle file.
func (p *YTDLP) subtitleOutputTemplate(videoID string) string {
	return filepath.Join(p.tempSubsDir, videoID+"_subtitle")
}

// LatestVideos resolves the channel's upload listing with a flat playlist
// extraction bounded to count entries.
func (p *YTDLP) LatestVideos(ctx context.Context, channelURL string, count int) ([]VideoSummary, string, error) {
	if count < 1 {
		count = 1
	}

	dl := ytdlp.New().
		FlatPlaylist().
		PlaylistEnd(count).
		DumpSingleJSON().
		SkipDownload()

	result, err := dl.Run(ctx, channelURL)
	if err != nil {
		return nil, "", fmt.Errorf("resolving channel listing: %w", err)
	}

	var listing struct {
		Uploader string `json:"uploader"`
		Channel  string `json:"channel"`
		Title    string `json:"title"`
		Entries  []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &listing); err != nil {
		return nil, "", fmt.Errorf("parsing channel listing: %w", err)
	}

	hint := listing.Uploader
	if hint == "" {
		hint = listing.Channel
	}
	if hint == "" {
		hint = listing.Title
	}

	var videos []VideoSummary
	for _, entry := range listing.Entries {
		if entry.ID == "" {
			continue
		}
		videos = append(videos, VideoSummary{
			ID:          entry.ID,
			Title:       entry.Title,
			URL:         watchURL(entry.ID),
			ChannelHint: hint,
		})
	}
	return videos, hint, nil
}

// Metadata fetches a single video's details via a JSON dump.
func (p *YTDLP) Metadata(ctx context.Context, videoURL string) (*VideoDetails, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	var raw struct {
		UploadDate string `json:"upload_date"`
		ViewCount  *int64 `json:"view_count"`
		Uploader   string `json:"uploader"`
		Channel    string `json:"channel"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &raw); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	details := &VideoDetails{ViewCount: raw.ViewCount, Uploader: raw.Uploader}
	if details.Uploader == "" {
		details.Uploader = raw.Channel
	}
	if raw.UploadDate != "" {
		if t, err := time.Parse("20060102", raw.UploadDate); err == nil {
			details.PublishDate = t.Format("2006-01-02")
		}
	}
	return details, nil
}

// Subtitles asks yt-dlp for human and auto-generated tracks in the given
// languages, preferring VTT and falling back to SRV3. yt-dlp writes the
// payloads to the temp directory and reports them in requested_subtitles.
func (p *YTDLP) Subtitles(ctx context.Context, videoID string, langs []string) (map[string]SubtitleTrack, error) {
	if err := EnsureDirs(p.tempSubsDir); err != nil {
		return nil, fmt.Errorf("creating temp subtitle directory: %w", err)
	}

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(strings.Join(langs, ",")).
		SubFormat("vtt/srv3/best").
		SkipDownload().
		PrintJSON().
		Output(p.subtitleOutputTemplate(videoID))

	result, err := dl.Run(ctx, watchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("fetching subtitles: %w", err)
	}

	var raw struct {
		RequestedSubtitles map[string]struct {
			Ext      string `json:"ext"`
			Filepath string `json:"filepath"`
			Data     string `json:"data"`
		} `json:"requested_subtitles"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &raw); err != nil {
		return nil, fmt.Errorf("parsing subtitle info: %w", err)
	}

	tracks := make(map[string]SubtitleTrack, len(raw.RequestedSubtitles))
	for lang, sub := range raw.RequestedSubtitles {
		format := sub.Ext
		if format == "" {
			format = FormatVTT
		}
		tracks[lang] = SubtitleTrack{
			Language: lang,
			Format:   format,
			Data:     sub.Data,
			Filepath: sub.Filepath,
		}
	}
	return tracks, nil
}

// watchURL builds the canonical video URL for an ID.
func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
