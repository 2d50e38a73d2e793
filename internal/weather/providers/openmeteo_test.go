package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sproutlog/internal/weather"
)

func TestOpenMeteoForecaster_Fetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":39.33,"longitude":-82.08,"daily":{"time":["2026-10-16","2026-10-17"],"temperature_2m_max":[68.4,70.1],"temperature_2m_min":[45.2,47.0],"precipitation_sum":[0.12,0],"wind_speed_10m_max":[9.8,12.3]}}`))
	}))
	defer srv.Close()

	f := NewOpenMeteoForecaster(HTTPClientConfig{Client: http.DefaultClient, Timeout: time.Second}, srv.URL)
	summary, err := f.Fetch(context.Background(), 39.3292, -82.0839)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, weather.DailySummary{MaxF: 68.4, MinF: 45.2, RainIn: 0.12, WindMph: 9.8}, *summary)

	assert.Equal(t, "39.3292", gotQuery["latitude"])
	assert.Equal(t, "-82.0839", gotQuery["longitude"])
	assert.Equal(t, openMeteoDailyFields, gotQuery["daily"])
	assert.Equal(t, "fahrenheit", gotQuery["temperature_unit"])
	assert.Equal(t, "mph", gotQuery["wind_speed_unit"])
	assert.Equal(t, "inch", gotQuery["precipitation_unit"])
	assert.Equal(t, "auto", gotQuery["timezone"])
}

func TestOpenMeteoForecaster_Unavailable(t *testing.T) {
	cases := map[string]func(w http.ResponseWriter){
		"server error": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed json": func(w http.ResponseWriter) {
			w.Write([]byte(`{"daily": {"temperature_2m_max": [`))
		},
		"missing daily block": func(w http.ResponseWriter) {
			w.Write([]byte(`{"error": true, "reason": "bad coordinates"}`))
		},
		"empty arrays": func(w http.ResponseWriter) {
			w.Write([]byte(`{"daily":{"temperature_2m_max":[],"temperature_2m_min":[],"precipitation_sum":[],"wind_speed_10m_max":[]}}`))
		},
		"null reading": func(w http.ResponseWriter) {
			w.Write([]byte(`{"daily":{"temperature_2m_max":[70],"temperature_2m_min":[50],"precipitation_sum":[null],"wind_speed_10m_max":[5]}}`))
		},
		"missing field": func(w http.ResponseWriter) {
			w.Write([]byte(`{"daily":{"temperature_2m_max":[70],"temperature_2m_min":[50],"precipitation_sum":[0]}}`))
		},
	}

	for name, respond := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respond(w)
			}))
			defer srv.Close()

			f := NewOpenMeteoForecaster(HTTPClientConfig{Client: http.DefaultClient, Timeout: time.Second}, srv.URL)
			summary, err := f.Fetch(context.Background(), 1, 2)
			assert.Nil(t, summary)
			assert.ErrorIs(t, err, weather.ErrUnavailable)
		})
	}
}

func TestOpenMeteoForecaster_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	f := NewOpenMeteoForecaster(HTTPClientConfig{Client: http.DefaultClient, Timeout: time.Second}, baseURL)
	summary, err := f.Fetch(context.Background(), 1, 2)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestOpenMeteoForecaster_NoClient(t *testing.T) {
	f := NewOpenMeteoForecaster(HTTPClientConfig{}, "http://example.invalid")
	_, err := f.Fetch(context.Background(), 1, 2)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}
