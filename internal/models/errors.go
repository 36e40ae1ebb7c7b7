package models

import "errors"

var (
	ErrEmptyCity          = errors.New("city is empty")
	ErrCityNotFound       = errors.New("city not found")
	ErrWeatherUnavailable = errors.New("weather unavailable")
	ErrUpstreamStatus     = errors.New("upstream returned unexpected status")
)
