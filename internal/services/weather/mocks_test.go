package weather_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, city string) (models.Location, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.Location)
	if !ok {
		return models.Location{}, args.Error(1)
	}
	return data, args.Error(1)
}

type mockForecaster struct {
	mock.Mock
}

func (m *mockForecaster) Current(ctx context.Context, lat, lon float64) (models.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	data, ok := args.Get(0).(models.CurrentWeather)
	if !ok {
		return models.CurrentWeather{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockForecaster) Daily(ctx context.Context, lat, lon float64) ([]models.DailyForecast, error) {
	args := m.Called(ctx, lat, lon)
	data, ok := args.Get(0).([]models.DailyForecast)
	if !ok {
		return nil, args.Error(1)
	}
	return data, args.Error(1)
}
