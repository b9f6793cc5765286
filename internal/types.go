package internal

import "fmt"

// VideoSummary is one entry from a channel's latest-videos listing.
type VideoSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	ChannelHint string `json:"channel_title_hint,omitempty"`
}

// VideoDetails holds per-video metadata fetched separately from the listing.
// Every field is optional; a failed metadata fetch leaves them zero.
type VideoDetails struct {
	PublishDate string `json:"publish_date,omitempty"` // YYYY-MM-DD
	ViewCount   *int64 `json:"view_count,omitempty"`
	Uploader    string `json:"uploader,omitempty"`
}

// TranscriptStatusUnavailable marks a transcript that could not be obtained.
// Absence of captions is an expected outcome, not an error.
const TranscriptStatusUnavailable = "unavailable"

// TranscriptResult is the outcome of one transcript retrieval. It is either
// a transcript (Original non-empty) or the explicit absence marker.
type TranscriptResult struct {
	Status         string `json:"status,omitempty"`
	Original       string `json:"original,omitempty"`
	Formatted      string `json:"formatted,omitempty"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// AbsentTranscript returns the absence marker.
func AbsentTranscript() *TranscriptResult {
	return &TranscriptResult{Status: TranscriptStatusUnavailable}
}

// Available reports whether a transcript was actually obtained.
func (t *TranscriptResult) Available() bool {
	return t != nil && t.Status != TranscriptStatusUnavailable && t.Original != ""
}

// ProcessedVideo aggregates a video's listing entry, metadata, and transcript.
type ProcessedVideo struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	PublishDate        string            `json:"publish_date,omitempty"`
	ViewCount          *int64            `json:"view_count,omitempty"`
	URL                string            `json:"url"`
	Transcript         *TranscriptResult `json:"transcript"`
	TranscriptLanguage string            `json:"transcript_language,omitempty"`
}

// ChannelRecord is the per-channel result of one collection run. It is owned
// by a single worker from creation until it is handed to the orchestrator.
type ChannelRecord struct {
	ChannelURL    string           `json:"channel_url"`
	ChannelName   string           `json:"channel_name"`
	Videos        []ProcessedVideo `json:"videos"`
	WordcloudPath string           `json:"wordcloud_path,omitempty"`

	nameFinal bool
}

// NewChannelRecord creates a record with a provisional channel name.
func NewChannelRecord(channelURL, provisionalName string) *ChannelRecord {
	return &ChannelRecord{ChannelURL: channelURL, ChannelName: provisionalName}
}

// FinalizeName replaces the provisional channel name with the canonical one.
// Only the first call with a non-empty name takes effect; later calls are
// ignored so the name is overwritten at most once.
func (r *ChannelRecord) FinalizeName(name string) bool {
	if r.nameFinal || name == "" || name == r.ChannelName {
		return false
	}
	r.ChannelName = name
	r.nameFinal = true
	return true
}

// TranscriptCount returns how many videos in the record have a transcript.
func (r *ChannelRecord) TranscriptCount() int {
	n := 0
	for i := range r.Videos {
		if r.Videos[i].Transcript.Available() {
			n++
		}
	}
	return n
}

// String identifies the record in logs.
func (r *ChannelRecord) String() string {
	return fmt.Sprintf("ChannelRecord{name=%q, videos=%d, wordcloud=%q}",
		r.ChannelName, len(r.Videos), r.WordcloudPath)
}

// CollectionReport is the consolidated result of one run: every channel that
// produced a record, in completion order.
type CollectionReport []*ChannelRecord
