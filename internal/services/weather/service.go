package weather

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const (
	outcomeSuccess     = "success"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

type geocoder interface {
	Geocode(ctx context.Context, city string) (models.Location, error)
}

type forecaster interface {
	Current(ctx context.Context, lat, lon float64) (models.CurrentWeather, error)
	Daily(ctx context.Context, lat, lon float64) ([]models.DailyForecast, error)
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service resolves a city and collects its current weather and daily forecast.
type Service struct {
	logger     zerolog.Logger
	geocoder   geocoder
	forecaster forecaster
	now        func() time.Time
}

func NewService(logger zerolog.Logger, geo geocoder, fc forecaster, opts ...Option) *Service {
	s := &Service{
		logger:     logger.With().Str("component", "WeatherService").Logger(),
		geocoder:   geo,
		forecaster: fc,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Lookup(ctx context.Context, city string) (models.Report, error) {
	s.logger.Info().
		Ctx(ctx).
		Str("city", city).
		Msg("looking up city")

	loc, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		s.logger.Warn().
			Ctx(ctx).
			Str("city", city).
			Err(err).
			Msg("geocoding failed")
		return models.Report{}, err
	}

	var (
		current     models.CurrentWeather
		forecast    []models.DailyForecast
		unavailable bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, cerr := s.forecaster.Current(gctx, loc.Latitude, loc.Longitude)
		if errors.Is(cerr, models.ErrWeatherUnavailable) {
			unavailable = true
			return nil
		}
		current = cur
		return cerr
	})
	g.Go(func() error {
		days, derr := s.forecaster.Daily(gctx, loc.Latitude, loc.Longitude)
		forecast = days
		return derr
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Str("location", loc.Display).
			Err(err).
			Msg("forecast fetch failed")
		return models.Report{}, err
	}

	if unavailable {
		s.logger.Warn().
			Ctx(ctx).
			Str("location", loc.Display).
			Msg("current weather unavailable")
		return models.Report{}, models.ErrWeatherUnavailable
	}

	current.Description = DescribeCode(current.Code)
	if forecast == nil {
		forecast = []models.DailyForecast{}
	}

	report := models.Report{
		Location:  loc,
		Current:   current,
		Forecast:  forecast,
		FetchedAt: s.now().UTC(),
	}

	s.logger.Info().
		Ctx(ctx).
		Str("location", loc.Display).
		Float64("temperature_c", current.TemperatureC).
		Int("forecast_days", len(forecast)).
		Msg("lookup succeeded")
	return report, nil
}

// Outcome classifies a lookup error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, models.ErrCityNotFound), errors.Is(err, models.ErrEmptyCity):
		return outcomeNotFound
	case errors.Is(err, models.ErrWeatherUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}
