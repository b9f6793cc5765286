package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists channel records, run reports, and resolves the most recent
// report for read-only consumers. Filenames are derived from sanitized
// channel names and run timestamps, so concurrent workers never target the
// same file within a run, and report files are never rewritten.
type Store struct {
	dataDir        string
	transcriptsDir string
	reportsDir     string
}

// NewStore creates a store writing below dataDir.
func NewStore(dataDir, transcriptsDir, reportsDir string) *Store {
	return &Store{
		dataDir:        dataDir,
		transcriptsDir: transcriptsDir,
		reportsDir:     reportsDir,
	}
}

// DataDir returns the base directory record-relative paths resolve against.
func (s *Store) DataDir() string {
	return s.dataDir
}

// SaveChannelRecord writes one channel's record, keyed by sanitized name.
func (s *Store) SaveChannelRecord(record *ChannelRecord) error {
	if err := EnsureDirs(s.transcriptsDir); err != nil {
		return fmt.Errorf("creating transcripts directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling channel record: %w", err)
	}

	path := filepath.Join(s.transcriptsDir, SanitizeFilename(record.ChannelName)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving channel record: %w", err)
	}
	return nil
}

// LoadChannelRecord reads a previously saved channel record by name.
func (s *Store) LoadChannelRecord(channelName string) (*ChannelRecord, error) {
	path := filepath.Join(s.transcriptsDir, SanitizeFilename(channelName)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading channel record: %w", err)
	}

	var record ChannelRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing channel record: %w", err)
	}
	return &record, nil
}

// SaveReport writes the consolidated report under a run-timestamped name.
// Each run produces a new file; existing reports are never touched.
func (s *Store) SaveReport(report CollectionReport, runStart time.Time) (string, error) {
	if err := EnsureDirs(s.reportsDir); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(s.reportsDir, fmt.Sprintf("report_%s.json", RunTimestamp(runStart)))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}

// LatestReport loads the most recently written report, selected by
// modification time. It returns the report and its filename.
func (s *Store) LatestReport() (CollectionReport, string, error) {
	entries, err := os.ReadDir(s.reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("no reports found")
		}
		return nil, "", fmt.Errorf("reading reports directory: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "report_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = name
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return nil, "", fmt.Errorf("no reports found")
	}

	data, err := os.ReadFile(filepath.Join(s.reportsDir, latest))
	if err != nil {
		return nil, "", fmt.Errorf("reading report: %w", err)
	}

	var report CollectionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, "", fmt.Errorf("parsing report %s: %w", latest, err)
	}
	return report, latest, nil
}

// ResolveArtifact turns a record's data-dir-relative artifact path into an
// absolute one, or "" when the artifact does not exist.
func (s *Store) ResolveArtifact(relPath string) string {
	if relPath == "" {
		return ""
	}
	full := filepath.Join(s.dataDir, relPath)
	if !FileExists(full) {
		return ""
	}
	return full
}
