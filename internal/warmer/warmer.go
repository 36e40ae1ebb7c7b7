package warmer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const timeoutDuration = 30 * time.Second

type citySource interface {
	RecentCities(ctx context.Context, limit int) ([]string, error)
}

type refresher interface {
	Refresh(ctx context.Context, city string) (models.Report, error)
}

// Warmer periodically refreshes cached reports for recently looked up cities.
type Warmer struct {
	source    citySource
	refresher refresher
	logger    zerolog.Logger
	cron      *cron.Cron
	cancel    context.CancelFunc
	spec      string
	cities    int
}

func New(source citySource, r refresher, logger zerolog.Logger, spec string, cities int) *Warmer {
	logger = logger.With().Str("component", "Warmer").Logger()
	return &Warmer{
		source:    source,
		refresher: r,
		logger:    logger,
		cron:      cron.New(),
		spec:      spec,
		cities:    cities,
	}
}

// Start schedules the refresh job. It returns an error for an invalid spec.
func (w *Warmer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	if _, err := w.cron.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		cancel()
		w.logger.Error().Err(err).Str("spec", w.spec).Msg("failed to schedule warmer job")
		return err
	}

	w.cancel = cancel
	w.cron.Start()
	w.logger.Info().Str("spec", w.spec).Int("cities", w.cities).Msg("warmer started")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *Warmer) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.cron.Stop().Done()
	w.logger.Info().Msg("warmer stopped")
}

// RunOnce refreshes every recent city and returns how many succeeded.
func (w *Warmer) RunOnce(ctx context.Context) int {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	cities, err := w.source.RecentCities(ctx, w.cities)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to load recent cities")
		return 0
	}

	refreshed := 0
	for _, city := range cities {
		if ctx.Err() != nil {
			w.logger.Warn().Err(ctx.Err()).Msg("warmer run interrupted")
			break
		}
		if _, err := w.refresher.Refresh(ctx, city); err != nil {
			w.logger.Warn().Err(err).Str("city", city).Msg("refresh failed")
			continue
		}
		refreshed++
	}

	w.logger.Info().
		Int("cities", len(cities)).
		Int("refreshed", refreshed).
		Dur("duration", time.Since(start)).
		Msg("warmer run completed")
	return refreshed
}
