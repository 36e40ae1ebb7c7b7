package presenter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
)

const Placeholder = "—"

const (
	StatusReady       = "Ready."
	StatusEnterCity   = "Enter a city."
	StatusLoading     = "Loading..."
	StatusNotFound    = "City not found."
	StatusUnavailable = "Weather unavailable."
	StatusNetwork     = "Network error."
	StatusDone        = "Done."
)

// View is the state of the weather window: one string per on-screen field.
type View struct {
	City        string   `json:"city"`
	Location    string   `json:"location"`
	Temperature string   `json:"temperature"`
	Wind        string   `json:"wind"`
	Time        string   `json:"time"`
	Conditions  string   `json:"conditions"`
	Forecast    []string `json:"forecast"`
	Status      string   `json:"status"`
}

// NewView returns the window as it looks before the first lookup.
func NewView() View {
	v := View{Status: StatusReady}
	v.reset()
	return v
}

func (v *View) reset() {
	v.Location = Placeholder
	v.Temperature = Placeholder
	v.Wind = Placeholder
	v.Time = Placeholder
	v.Conditions = Placeholder
	v.Forecast = []string{}
}

type lookupService interface {
	Lookup(ctx context.Context, city string) (models.Report, error)
}

type Presenter struct {
	service lookupService
	logger  zerolog.Logger
}

func New(service lookupService, logger zerolog.Logger) *Presenter {
	return &Presenter{service: service, logger: logger.With().Str("component", "Presenter").Logger()}
}

// Lookup runs a lookup on top of the current view and returns the new view.
// onLoading, when set, receives the view in its loading state before any
// network call is made.
func (p *Presenter) Lookup(ctx context.Context, current View, city string, onLoading func(View)) View {
	v := current
	v.City = city
	city = strings.TrimSpace(city)
	if city == "" {
		v.Status = StatusEnterCity
		return v
	}

	v.reset()
	v.Status = StatusLoading
	if onLoading != nil {
		onLoading(v)
	}

	report, err := p.service.Lookup(ctx, city)
	if err != nil {
		v.Status = StatusFor(err)
		p.logger.Info().
			Ctx(ctx).
			Str("city", city).
			Str("status", v.Status).
			Err(err).
			Msg("lookup did not complete")
		return v
	}

	return Populate(v, report)
}

// StatusFor maps a lookup error to the status line. Anything unrecognised is
// reported as a network error.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusDone
	case errors.Is(err, models.ErrEmptyCity):
		return StatusEnterCity
	case errors.Is(err, models.ErrCityNotFound):
		return StatusNotFound
	case errors.Is(err, models.ErrWeatherUnavailable):
		return StatusUnavailable
	default:
		return StatusNetwork
	}
}

// Populate fills every field of v from report and marks it done.
func Populate(v View, report models.Report) View {
	cur := report.Current

	v.Location = report.Location.Display
	v.Temperature = FormatTemperature(cur.TemperatureC)
	v.Wind = FormatNumber(cur.WindSpeedKmh) + " km/h"
	v.Time = cur.Time
	v.Conditions = cur.Description

	v.Forecast = make([]string, 0, len(report.Forecast))
	for _, day := range report.Forecast {
		v.Forecast = append(v.Forecast, FormatDay(day))
	}

	v.Status = StatusDone
	return v
}

// FormatTemperature renders Celsius and Fahrenheit, both to one decimal.
func FormatTemperature(c float64) string {
	f := weather.CelsiusToFahrenheit(c)
	return fmt.Sprintf("%s °C  /  %s °F",
		FormatNumber(weather.Round1(c)), FormatNumber(weather.Round1(f)))
}

func FormatDay(day models.DailyForecast) string {
	return fmt.Sprintf("%s  High: %s°C  Low: %s°C", day.Date, FormatNumber(day.HighC), FormatNumber(day.LowC))
}

// FormatNumber prints the shortest decimal form, keeping ".0" on whole numbers.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Text renders the view as the plain block printed by the terminal mode.
func (v View) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location:    %s\n", v.Location)
	fmt.Fprintf(&b, "Temp:        %s\n", v.Temperature)
	fmt.Fprintf(&b, "Wind:        %s\n", v.Wind)
	fmt.Fprintf(&b, "Time:        %s\n", v.Time)
	fmt.Fprintf(&b, "Conditions:  %s\n", v.Conditions)
	b.WriteString("\n7-Day Forecast:\n")
	for _, line := range v.Forecast {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	fmt.Fprintf(&b, "\n%s\n", v.Status)
	return b.String()
}
