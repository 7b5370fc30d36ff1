package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darknivht/Agrisense-AI/internal/core"
)

func TestCurrentParsesResponse(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{
			"weather": [{"description": "scattered clouds"}],
			"main": {"temp": 28.5, "humidity": 65},
			"wind": {"speed": 3.2},
			"rain": {"1h": 0.4}
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.SetBaseURL(srv.URL)

	snap, err := c.Current(context.Background(), "Ibadan")
	require.NoError(t, err)
	assert.Equal(t, "Ibadan,NG", gotQuery)
	assert.Equal(t, "Ibadan", snap.Location)
	assert.Equal(t, 28.5, snap.Temperature)
	assert.Equal(t, 65, snap.Humidity)
	assert.Equal(t, 3.2, snap.WindSpeed)
	assert.Equal(t, 0.4, snap.RainfallMM)
	assert.Equal(t, "scattered clouds", snap.Description)
	assert.NotEmpty(t, snap.Advisory)
}

func TestCurrentKeepsExplicitCountry(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"main": {"temp": 25, "humidity": 50}}`))
	}))
	defer srv.Close()

	c := NewClient("k")
	c.SetBaseURL(srv.URL)
	_, err := c.Current(context.Background(), "Accra,GH")
	require.NoError(t, err)
	assert.Equal(t, "Accra,GH", gotQuery)
}

func TestCurrentHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key")
	c.SetBaseURL(srv.URL)
	_, err := c.Current(context.Background(), "Kano")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestAdvisoryThresholds(t *testing.T) {
	cases := []struct {
		name string
		snap core.WeatherSnapshot
		want string
	}{
		{"heat stress", core.WeatherSnapshot{Temperature: 38, Humidity: 50}, "Heat stress"},
		{"cold stress", core.WeatherSnapshot{Temperature: 8, Humidity: 50}, "Cold stress"},
		{"heavy rain", core.WeatherSnapshot{Temperature: 25, Humidity: 50, RainfallMM: 15}, "Heavy rainfall"},
		{"strong wind", core.WeatherSnapshot{Temperature: 25, Humidity: 50, WindSpeed: 12}, "Strong winds"},
		{"high humidity", core.WeatherSnapshot{Temperature: 25, Humidity: 85}, "High humidity"},
		{"low humidity", core.WeatherSnapshot{Temperature: 25, Humidity: 20}, "Low humidity"},
		{"favorable", core.WeatherSnapshot{Temperature: 25, Humidity: 60}, "favorable"},
		{"neutral", core.WeatherSnapshot{Temperature: 15, Humidity: 60}, "manageable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, Advisory(&tc.snap), tc.want)
		})
	}
}
