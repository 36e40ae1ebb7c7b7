package openmeteo

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const unknownCode = -1

type currentResponse struct {
	CurrentWeather *struct {
		Temperature   *float64 `json:"temperature"`
		WindSpeed     float64  `json:"windspeed"`
		WindDirection float64  `json:"winddirection"`
		WeatherCode   *int     `json:"weathercode"`
		Time          string   `json:"time"`
	} `json:"current_weather"`
}

type dailyResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		Temperature2mMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func coordinates(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("timezone", "auto")
	return params
}

// Current returns the current conditions at the given point. Description is
// left empty; callers map Code to text.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.CurrentWeather, error) {
	params := coordinates(lat, lon)
	params.Set("current_weather", "true")

	var raw currentResponse
	if err := c.getJSON(ctx, c.forecastURL, params, &raw); err != nil {
		return models.CurrentWeather{}, err
	}

	cur := raw.CurrentWeather
	if cur == nil || cur.Temperature == nil {
		c.logger.Warn().
			Ctx(ctx).
			Float64("latitude", lat).
			Float64("longitude", lon).
			Msg("response carries no current weather")
		return models.CurrentWeather{}, models.ErrWeatherUnavailable
	}

	code := unknownCode
	if cur.WeatherCode != nil {
		code = *cur.WeatherCode
	}

	return models.CurrentWeather{
		TemperatureC:  *cur.Temperature,
		WindSpeedKmh:  cur.WindSpeed,
		WindDirection: cur.WindDirection,
		Time:          cur.Time,
		Code:          code,
	}, nil
}

// Daily returns the daily high/low forecast at the given point.
func (c *Client) Daily(ctx context.Context, lat, lon float64) ([]models.DailyForecast, error) {
	params := coordinates(lat, lon)
	params.Set("daily", "temperature_2m_max,temperature_2m_min")
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))

	var raw dailyResponse
	if err := c.getJSON(ctx, c.forecastURL, params, &raw); err != nil {
		return nil, err
	}

	days := raw.Daily
	n := min(len(days.Time), len(days.Temperature2mMax), len(days.Temperature2mMin))

	forecast := make([]models.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		hi, lo := days.Temperature2mMax[i], days.Temperature2mMin[i]
		if hi == nil || lo == nil {
			continue
		}
		forecast = append(forecast, models.DailyForecast{
			Date:  days.Time[i],
			HighC: *hi,
			LowC:  *lo,
		})
	}
	return forecast, nil
}
