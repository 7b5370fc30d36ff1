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

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Agronomic thresholds behind the advisory text.
const (
	heatStressTemp  = 35.0
	coldStressTemp  = 10.0
	optimalTempLow  = 20.0
	optimalTempHigh = 30.0
	lowHumidity     = 30
	highHumidity    = 80
	strongWindSpeed = 10.0
	heavyRainfallMM = 10.0
)

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the API endpoint.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// Current returns a snapshot of conditions for a location. Bare place
// names are scoped to Nigeria.
func (c *Client) Current(ctx context.Context, location string) (*core.WeatherSnapshot, error) {
	query := location
	if !strings.Contains(location, ",") {
		query = location + ",NG"
	}

	reqURL := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric", c.baseURL, url.QueryEscape(query), c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API HTTP error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	snap := &core.WeatherSnapshot{
		Location:    location,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		RainfallMM:  payload.Rain.OneHour,
	}
	if len(payload.Weather) > 0 {
		snap.Description = payload.Weather[0].Description
	}
	snap.Advisory = Advisory(snap)

	logger.Debug("Weather for %s: %.1f°C, %d%% humidity, %s", location, snap.Temperature, snap.Humidity, snap.Description)
	return snap, nil
}

// Advisory derives a short farming advisory from current conditions,
// worst condition first.
func Advisory(s *core.WeatherSnapshot) string {
	switch {
	case s.Temperature >= heatStressTemp:
		return "Heat stress risk: water crops early morning or evening and provide shade for livestock."
	case s.Temperature <= coldStressTemp:
		return "Cold stress risk: protect seedlings and delay transplanting until temperatures rise."
	case s.RainfallMM >= heavyRainfallMM:
		return "Heavy rainfall: check drainage, delay fertilizer application and watch for fungal disease."
	case s.WindSpeed >= strongWindSpeed:
		return "Strong winds: stake tall crops and postpone pesticide spraying."
	case s.Humidity >= highHumidity:
		return "High humidity: monitor for fungal diseases and improve air circulation around crops."
	case s.Humidity <= lowHumidity:
		return "Low humidity: increase irrigation frequency and mulch to retain soil moisture."
	case s.Temperature >= optimalTempLow && s.Temperature <= optimalTempHigh:
		return "Conditions are favorable for most field work and planting."
	default:
		return "Conditions are generally manageable; follow your normal schedule."
	}
}
