// Package weather looks up current conditions via weatherapi.com.
// Successful lookups are cached so repeated queries for the same place
// within the TTL don't hit the network.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.WeatherConfig
	cache      *cache.Cache
}

func NewClient(cfg *config.WeatherConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cfg:   cfg,
		cache: cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
	}
}

type currentResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC     float64 `json:"temp_c"`
		Humidity  int     `json:"humidity"`
		WindKph   float64 `json:"wind_kph"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Lookup resolves a location to its current conditions. Unknown locations
// return ErrLocationNotFound.
func (c *Client) Lookup(ctx context.Context, location string) (core.WeatherReport, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if cached, found := c.cache.Get(key); found {
		if report, ok := cached.(core.WeatherReport); ok {
			log.FromCtx(ctx).Debug().Str("location", key).Msg("weather cache hit")
			return report, nil
		}
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s",
		c.cfg.BaseURL, c.cfg.APIKey, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.WeatherReport{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.ScribeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.WeatherReport{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.WeatherReport{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return core.WeatherReport{}, core.ErrLocationNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return core.WeatherReport{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var decoded currentResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return core.WeatherReport{}, fmt.Errorf("decode: %w", err)
	}
	if decoded.Current == nil || decoded.Location == nil {
		return core.WeatherReport{}, core.ErrLocationNotFound
	}

	report := core.WeatherReport{
		TemperatureC: decoded.Current.TempC,
		Condition:    decoded.Current.Condition.Text,
		Humidity:     decoded.Current.Humidity,
		WindKph:      decoded.Current.WindKph,
		Location:     decoded.Location.Name,
	}

	c.cache.Set(key, report, cache.DefaultExpiration)
	return report, nil
}
