package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	Channels          []string
	PreferredLanguage string
	VideosPerChannel  int
	Workers           int
	DisplayWidth      int
	DashboardAddr     string
	LogLevel          string
	Verbose           bool
	Quiet             bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string

	// Derived storage locations inside DataDir/CacheDir
	TranscriptsDir string
	ReportsDir     string
	WordcloudsDir  string
	LogsDir        string
	TempSubsDir    string
}

//go:embed config.toml stopwords_pt.txt
var defaultFS embed.FS

// DefaultWorkers bounds how many channels are processed concurrently.
const DefaultWorkers = 3

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultStopwords checks if a stopword list exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultStopwords(configDir string) error {
	return ensureDefaultFile(configDir, "stopwords_pt.txt", "stopword list")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "tubecloud")
	dataDir := filepath.Join(xdg.DataHome, "tubecloud")
	cacheDir := filepath.Join(xdg.CacheHome, "tubecloud")

	// Initialize viper
	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("channels", []string{})
	v.SetDefault("preferred_language", "pt")
	v.SetDefault("videos_per_channel", 1)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("display_width", 70)
	v.SetDefault("dashboard_addr", ":8501")
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("TUBECLOUD")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	workers := v.GetInt("workers")
	if workers < 1 {
		workers = DefaultWorkers
	}

	config := &Config{
		// User configurable settings
		Channels:          v.GetStringSlice("channels"),
		PreferredLanguage: v.GetString("preferred_language"),
		VideosPerChannel:  v.GetInt("videos_per_channel"),
		Workers:           workers,
		DisplayWidth:      v.GetInt("display_width"),
		DashboardAddr:     v.GetString("dashboard_addr"),
		LogLevel:          v.GetString("log_level"),
		Verbose:           v.GetBool("verbose"),
		Quiet:             v.GetBool("quiet"),

		// Fixed XDG paths
		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}
	config.deriveDirs()

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// deriveDirs fills in the storage locations under DataDir and CacheDir.
func (c *Config) deriveDirs() {
	c.TranscriptsDir = filepath.Join(c.DataDir, "transcripts")
	c.ReportsDir = filepath.Join(c.DataDir, "reports")
	c.WordcloudsDir = filepath.Join(c.DataDir, "wordclouds")
	c.LogsDir = filepath.Join(c.DataDir, "logs")
	c.TempSubsDir = filepath.Join(c.CacheDir, "temp_subs")
}

// TestConfig returns a config rooted at dir, for use in tests.
func TestConfig(dir string) *Config {
	c := &Config{
		PreferredLanguage: "pt",
		VideosPerChannel:  1,
		Workers:           DefaultWorkers,
		DisplayWidth:      70,
		LogLevel:          "disabled",
		Quiet:             true,
		ConfigDir:         filepath.Join(dir, "config"),
		DataDir:           filepath.Join(dir, "data"),
		CacheDir:          filepath.Join(dir, "cache"),
	}
	c.deriveDirs()
	return c
}

// EnsureStorageDirs creates every directory the pipeline writes to.
func (c *Config) EnsureStorageDirs() error {
	return EnsureDirs(c.TranscriptsDir, c.ReportsDir, c.WordcloudsDir, c.LogsDir, c.TempSubsDir)
}

// RunTimestamp formats a run start time for report filenames.
func RunTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
