package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const (
	defaultLanguage     = "en"
	defaultForecastDays = 7
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Client)

// WithLanguage sets the language geocoding results are returned in.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithForecastDays sets how many days the daily forecast covers.
func WithForecastDays(days int) Option {
	return func(c *Client) {
		if days > 0 {
			c.forecastDays = days
		}
	}
}

// Client talks to the Open-Meteo geocoding and forecast endpoints.
type Client struct {
	geocodingURL string
	forecastURL  string
	language     string
	forecastDays int
	client       HTTPClient
	logger       zerolog.Logger
}

func NewClient(geocodingURL, forecastURL string,
	httpClient HTTPClient, logger zerolog.Logger, opts ...Option,
) *Client {
	c := &Client{
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		language:     defaultLanguage,
		forecastDays: defaultForecastDays,
		client:       httpClient,
		logger:       logger.With().Str("component", "OpenMeteoClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) getJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	start := time.Now()

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", baseURL, err)
	}
	u.RawQuery = params.Encode()
	target := u.String()

	c.logger.Debug().
		Ctx(ctx).
		Str("url", target).
		Msg("starting Open-Meteo request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", target).
			Msg("failed to create HTTP request")
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", target).
			Msg("error sending HTTP request to Open-Meteo")
		return fmt.Errorf("request %s: %w", u.Path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().
				Err(cerr).
				Str("url", target).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Ctx(ctx).
			Str("url", target).
			Str("status", resp.Status).
			Msg("Open-Meteo returned non-200 status")
		return fmt.Errorf("%w: %s", models.ErrUpstreamStatus, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", target).
			Msg("failed to decode Open-Meteo response")
		return fmt.Errorf("decode %s: %w", u.Path, err)
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("url", target).
		Dur("duration", time.Since(start)).
		Msg("Open-Meteo request completed")
	return nil
}
