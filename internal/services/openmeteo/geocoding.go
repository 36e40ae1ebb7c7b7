package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a city name to the best matching place.
func (c *Client) Geocode(ctx context.Context, city string) (models.Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Location{}, models.ErrEmptyCity
	}

	params := url.Values{}
	params.Set("name", city)
	params.Set("count", strconv.Itoa(1))
	params.Set("language", c.language)
	params.Set("format", "json")

	var raw geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL, params, &raw); err != nil {
		return models.Location{}, err
	}

	if len(raw.Results) == 0 {
		c.logger.Info().
			Ctx(ctx).
			Str("city", city).
			Msg("geocoding returned no results")
		return models.Location{}, models.ErrCityNotFound
	}

	place := raw.Results[0]
	name := place.Name
	if name == "" {
		name = city
	}

	return models.Location{
		Name:      name,
		Country:   place.Country,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Display:   displayName(name, place.Country),
	}, nil
}

// displayName joins name and country, dropping the separator when one side is blank.
func displayName(name, country string) string {
	return strings.Trim(strings.TrimSpace(name+", "+country), ",")
}
