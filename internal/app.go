package internal

import (
	"github.com/rs/zerolog"
)

// App holds the collection pipeline's state and dependencies
type App struct {
	provider  Provider
	renderer  Renderer
	store     *Store
	config    *Config
	ui        UIManager
	log       zerolog.Logger
	stopwords map[string]struct{}
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		provider:  NewYTDLP(config.TempSubsDir, config.Verbose),
		renderer:  NewWordcloudRenderer(config.CacheDir),
		store:     NewStore(config.DataDir, config.TranscriptsDir, config.ReportsDir),
		config:    config,
		ui:        NewUIManager(config.Verbose, config.Quiet),
		log:       NewLogger(config.LogsDir, config.LogLevel, config.Quiet && !config.Verbose),
		stopwords: LoadStopwords(config.ConfigDir),
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithProvider sets a custom video/subtitle provider
func WithProvider(provider Provider) AppOption {
	return func(a *App) {
		a.provider = provider
	}
}

// WithRenderer sets a custom wordcloud renderer
func WithRenderer(renderer Renderer) AppOption {
	return func(a *App) {
		a.renderer = renderer
	}
}

// WithStore sets a custom store
func WithStore(store *Store) AppOption {
	return func(a *App) {
		a.store = store
	}
}

// WithLogger sets a custom logger
func WithLogger(log zerolog.Logger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// WithStopwords sets a custom stopword set
func WithStopwords(stopwords map[string]struct{}) AppOption {
	return func(a *App) {
		a.stopwords = stopwords
	}
}

// Store returns the persistence layer, for read-only consumers.
func (app *App) Store() *Store {
	return app.store
}
