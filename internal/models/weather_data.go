package models

import "time"

type CurrentWeather struct {
	TemperatureC  float64 `json:"temperature_c"`
	WindSpeedKmh  float64 `json:"windspeed_kmh"`
	WindDirection float64 `json:"wind_direction"`
	Time          string  `json:"time"`
	Code          int     `json:"weather_code"`
	Description   string  `json:"description"`
}

type DailyForecast struct {
	Date  string  `json:"date"`
	HighC float64 `json:"high_c"`
	LowC  float64 `json:"low_c"`
}

// Report is the result of a single city lookup.
type Report struct {
	Location  Location        `json:"location"`
	Current   CurrentWeather  `json:"current"`
	Forecast  []DailyForecast `json:"forecast"`
	FetchedAt time.Time       `json:"fetched_at"`
}
