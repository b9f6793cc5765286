package internal

import (
	"context"
	"sync"
	"time"
)

// Collect runs one full collection: every configured channel is processed on
// a fixed-size worker pool, per-channel failures are isolated, and the
// surviving records are assembled into a timestamped report. Records appear
// in completion order; no cross-channel ordering is guaranteed. The returned
// path is empty when nothing was collected and therefore no report was
// written. Collect itself only fails on an empty channel list's report write
// or other persistence setup problems, never on channel failures.
func (app *App) Collect(ctx context.Context) (CollectionReport, string, error) {
	start := time.Now()
	channels := app.config.Channels

	app.log.Info().Int("channels", len(channels)).Int("workers", app.config.Workers).
		Msg("collection started")

	if len(channels) == 0 {
		app.log.Warn().Msg("no channels configured, nothing to collect")
		return CollectionReport{}, "", nil
	}

	if err := app.config.EnsureStorageDirs(); err != nil {
		return nil, "", err
	}

	jobs := make(chan string)
	results := make(chan *ChannelRecord)

	workers := app.config.Workers
	if workers > len(channels) {
		workers = len(channels)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for channelURL := range jobs {
				results <- app.runChannelTask(ctx, channelURL)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, channelURL := range channels {
			select {
			case jobs <- channelURL:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	bar := app.ui.NewProgressBar(len(channels), "Collecting channels")
	report := CollectionReport{}
	for record := range results {
		bar.Add(1)
		if record != nil {
			report = append(report, record)
		}
	}
	bar.Finish()

	if len(report) == 0 {
		app.log.Warn().Msg("no channel produced a result, writing no report")
		return report, "", nil
	}

	reportPath, err := app.store.SaveReport(report, start)
	if err != nil {
		app.log.Error().Err(err).Msg("saving consolidated report failed")
		return report, "", err
	}

	app.log.Info().Int("collected", len(report)).Int("skipped", len(channels)-len(report)).
		Str("report", reportPath).Dur("elapsed", time.Since(start)).
		Msg("collection finished")
	return report, reportPath, nil
}

// runChannelTask is the worker-side boundary around one channel. The
// processor already recovers its own panics; this second recover defends the
// pool against anything that still escapes, so a worker goroutine can never
// die and strand the queue.
func (app *App) runChannelTask(ctx context.Context, channelURL string) (record *ChannelRecord) {
	defer func() {
		if r := recover(); r != nil {
			app.log.Error().Str("channel", channelURL).Any("panic", r).
				Msg("channel task failed, no result")
			record = nil
		}
	}()
	return app.processChannel(ctx, channelURL)
}
