package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sproutlog/internal/weather"
)

const openMeteoDailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max"

// OpenMeteoForecaster implements weather.Forecaster for Open-Meteo daily
// forecasts.
type OpenMeteoForecaster struct {
	baseURL string
	httpCfg HTTPClientConfig
}

func NewOpenMeteoForecaster(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoForecaster {
	return &OpenMeteoForecaster{
		baseURL: baseURL,
		httpCfg: httpCfg,
	}
}

// Fetch returns today's high/low, precipitation total and max wind speed.
func (p *OpenMeteoForecaster) Fetch(ctx context.Context, lat, lon float64) (*weather.DailySummary, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("daily", openMeteoDailyFields)
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
		values.Set("precipitation_unit", "inch")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, cancel, err := doRequest(ctx, p.httpCfg, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	defer cancel()
	defer resp.Body.Close()

	// Pointers distinguish a JSON null from a real zero reading.
	var payload struct {
		Daily *struct {
			TempMax []*float64 `json:"temperature_2m_max"`
			TempMin []*float64 `json:"temperature_2m_min"`
			Precip  []*float64 `json:"precipitation_sum"`
			WindMax []*float64 `json:"wind_speed_10m_max"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode forecast: %v", weather.ErrUnavailable, err)
	}
	if payload.Daily == nil {
		return nil, fmt.Errorf("%w: response has no daily block", weather.ErrUnavailable)
	}

	d := payload.Daily
	maxF, err := first("temperature_2m_max", d.TempMax)
	if err != nil {
		return nil, err
	}
	minF, err := first("temperature_2m_min", d.TempMin)
	if err != nil {
		return nil, err
	}
	rain, err := first("precipitation_sum", d.Precip)
	if err != nil {
		return nil, err
	}
	wind, err := first("wind_speed_10m_max", d.WindMax)
	if err != nil {
		return nil, err
	}

	return &weather.DailySummary{
		MaxF:    maxF,
		MinF:    minF,
		RainIn:  rain,
		WindMph: wind,
	}, nil
}

func first(field string, values []*float64) (float64, error) {
	if len(values) == 0 || values[0] == nil {
		return 0, fmt.Errorf("%w: missing %s for today", weather.ErrUnavailable, field)
	}
	return *values[0], nil
}
