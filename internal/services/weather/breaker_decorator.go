package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isDomainMiss(err)
		},
	})
}

// isDomainMiss reports errors that describe the answer, not the health of the upstream.
func isDomainMiss(err error) bool {
	return errors.Is(err, models.ErrEmptyCity) ||
		errors.Is(err, models.ErrCityNotFound) ||
		errors.Is(err, models.ErrWeatherUnavailable)
}

func execute[T any](cb *gobreaker.CircuitBreaker, name string, fn func() (T, error)) (T, error) {
	var zero T

	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if isDomainMiss(err) {
			return zero, err
		}
		return zero, fmt.Errorf("%s unavailable: %w", name, err)
	}
	res, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned unexpected result", name)
	}
	return res, nil
}

type BreakerGeocoder struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped geocoder
}

func NewBreakerGeocoder(name string, cfg BreakerConfig, wrapped geocoder) *BreakerGeocoder {
	return &BreakerGeocoder{name: name, cb: newCircuitBreaker(name, cfg), wrapped: wrapped}
}

func (b *BreakerGeocoder) Geocode(ctx context.Context, city string) (models.Location, error) {
	return execute(b.cb, b.name, func() (models.Location, error) {
		return b.wrapped.Geocode(ctx, city)
	})
}

// BreakerForecaster shares one breaker between the current and daily calls,
// they hit the same endpoint.
type BreakerForecaster struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped forecaster
}

func NewBreakerForecaster(name string, cfg BreakerConfig, wrapped forecaster) *BreakerForecaster {
	return &BreakerForecaster{name: name, cb: newCircuitBreaker(name, cfg), wrapped: wrapped}
}

func (b *BreakerForecaster) Current(ctx context.Context, lat, lon float64) (models.CurrentWeather, error) {
	return execute(b.cb, b.name, func() (models.CurrentWeather, error) {
		return b.wrapped.Current(ctx, lat, lon)
	})
}

func (b *BreakerForecaster) Daily(ctx context.Context, lat, lon float64) ([]models.DailyForecast, error) {
	return execute(b.cb, b.name, func() ([]models.DailyForecast, error) {
		return b.wrapped.Daily(ctx, lat, lon)
	})
}
