package decorators

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type lookupService interface {
	Lookup(ctx context.Context, city string) (models.Report, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

type CachedService struct {
	inner  lookupService
	cache  cacheClient[models.Report]
	logger zerolog.Logger
}

func NewCachedService(
	inner lookupService,
	cache cacheClient[models.Report],
	logger zerolog.Logger,
) *CachedService {
	logger = logger.With().Str("component", "CachedService").Logger()
	return &CachedService{inner: inner, cache: cache, logger: logger}
}

// Key is the cache key for a city query; case and surrounding space are ignored.
func Key(city string) string {
	return "lookup:" + strings.ToLower(strings.TrimSpace(city))
}

func (s *CachedService) Lookup(ctx context.Context, city string) (models.Report, error) {
	if strings.TrimSpace(city) == "" {
		return s.inner.Lookup(ctx, city)
	}
	key := Key(city)

	report, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Info().
			Ctx(ctx).
			Str("city", city).
			Str("key", key).
			Msg("cache hit")
		return report, nil
	}
	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Str("key", key).
		Err(err).
		Msg("cache miss")

	return s.fetchAndStore(ctx, city, key)
}

// Refresh fetches a fresh report and overwrites the cached one.
func (s *CachedService) Refresh(ctx context.Context, city string) (models.Report, error) {
	return s.fetchAndStore(ctx, city, Key(city))
}

func (s *CachedService) fetchAndStore(ctx context.Context, city, key string) (models.Report, error) {
	report, err := s.inner.Lookup(ctx, city)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Err(err).
			Msg("inner service failed")
		return models.Report{}, err
	}

	if err := s.cache.Set(ctx, key, report); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}

	return report, nil
}
