// Package webapi wraps the two real HTTP services the shell touches: the
// public IP lookup shown by neofetch and the OpenWeatherMap forecast.
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-errors/errors"
)

// ErrNoAPIKey is returned by Forecast when no weather key is configured.
var ErrNoAPIKey = errors.Errorf("weather api key not configured")

// ErrCityNotFound is returned by Forecast when geocoding finds nothing.
var ErrCityNotFound = errors.Errorf("city not found")

// Client talks to the IP and weather endpoints.
type Client struct {
	WeatherURL string // base URL, e.g. https://api.openweathermap.org
	APIKey     string
	IPURL      string // returns {"ip": "..."}
	HTTPClient *http.Client
}

// New creates a client with a short timeout; these calls are decoration.
func New(weatherURL, apiKey, ipURL string) *Client {
	return &Client{
		WeatherURL: strings.TrimRight(weatherURL, "/"),
		APIKey:     apiKey,
		IPURL:      ipURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PublicIP returns the caller's public address.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	var body struct {
		IP string `json:"ip"`
	}
	if err := c.getJSON(ctx, c.IPURL, &body); err != nil {
		return "", fmt.Errorf("public ip: %w", err)
	}
	if body.IP == "" {
		return "", errors.Errorf("public ip: empty response")
	}
	return body.IP, nil
}

// Forecast geocodes city and fetches its 5-day / 3-hour forecast.
// lang is an OpenWeatherMap language code such as "es-ES".
func (c *Client) Forecast(ctx context.Context, city, lang string) (*Forecast, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	geoURL := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s",
		c.WeatherURL, url.QueryEscape(city), url.QueryEscape(c.APIKey))
	var places []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := c.getJSON(ctx, geoURL, &places); err != nil {
		return nil, fmt.Errorf("geocode %s: %w", city, err)
	}
	if len(places) == 0 {
		return nil, ErrCityNotFound
	}

	forecastURL := fmt.Sprintf("%s/data/2.5/forecast?lat=%g&lon=%g&appid=%s&units=metric&lang=%s",
		c.WeatherURL, places[0].Lat, places[0].Lon, url.QueryEscape(c.APIKey), url.QueryEscape(lang))
	var f Forecast
	if err := c.getJSON(ctx, forecastURL, &f); err != nil {
		return nil, fmt.Errorf("forecast %s: %w", city, err)
	}
	return &f, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// parseError extracts OpenWeatherMap's {"message": ...} when present.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return errors.Errorf("%s (HTTP %d)", apiErr.Message, resp.StatusCode)
	}
	return errors.Errorf("HTTP %d", resp.StatusCode)
}
