package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
)

func TestDescribeCode(t *testing.T) {
	testCases := []struct {
		codes []int
		want  string
	}{
		{codes: []int{0}, want: "Clear Sky"},
		{codes: []int{1, 2, 3}, want: "Cloudy"},
		{codes: []int{45, 48}, want: "Fog"},
		{codes: []int{51, 53, 55}, want: "Drizzle"},
		{codes: []int{61, 63, 65}, want: "Rain"},
		{codes: []int{71, 73, 75}, want: "Snow"},
		{codes: []int{80, 81, 82}, want: "Rain Showers"},
		{codes: []int{95}, want: "Thunderstorm"},
		{codes: []int{96, 99}, want: "Thunderstorm with hail"},
		{codes: []int{-1, 4, 56, 66, 77, 85, 86, 100}, want: "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			for _, code := range tc.codes {
				assert.Equal(t, tc.want, weather.DescribeCode(code), "code %d", code)
			}
		})
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.Equal(t, 32.0, weather.CelsiusToFahrenheit(0))
	assert.Equal(t, 212.0, weather.CelsiusToFahrenheit(100))
	assert.Equal(t, -40.0, weather.CelsiusToFahrenheit(-40))
	assert.InDelta(t, 70.52, weather.CelsiusToFahrenheit(21.4), 1e-9)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 21.4, weather.Round1(21.44))
	assert.Equal(t, 2.2, weather.Round1(2.25))
	assert.Equal(t, -3.2, weather.Round1(-3.25))
	assert.Equal(t, 0.2, weather.Round1(0.25))
	assert.Equal(t, 0.8, weather.Round1(0.75))
	assert.Equal(t, 70.5, weather.Round1(70.52))
}
