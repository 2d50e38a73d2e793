package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sproutlog/internal/weather"
)

// ZippopotamGeocoder implements weather.Geocoder against the zippopotam.us
// lookup service.
type ZippopotamGeocoder struct {
	baseURL  string
	httpCfg  HTTPClientConfig
	fallback weather.Location
}

// NewZippopotamGeocoder creates a geocoder. baseURL is the country-scoped
// prefix, e.g. http://api.zippopotam.us/us.
func NewZippopotamGeocoder(httpCfg HTTPClientConfig, baseURL string, fallbackLat, fallbackLon float64) *ZippopotamGeocoder {
	return &ZippopotamGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		fallback: weather.Location{
			Latitude:  fallbackLat,
			Longitude: fallbackLon,
			PlaceName: weather.UnknownPlace,
		},
	}
}

// Resolve looks the zip code up and degrades to the fallback location on any
// failure.
func (g *ZippopotamGeocoder) Resolve(ctx context.Context, zip string) weather.Location {
	loc, err := g.lookup(ctx, zip)
	if err != nil {
		if errors.Is(err, errNotFound) {
			log.Printf("geocoder: zip code %q not found, using fallback location", zip)
		} else {
			log.Printf("geocoder: lookup for %q failed, using fallback location: %v", zip, err)
		}
		return g.fallback
	}
	log.Printf("geocoder: located %s (%f, %f)", loc.Display(), loc.Latitude, loc.Longitude)
	return loc
}

func (g *ZippopotamGeocoder) lookup(ctx context.Context, zip string) (weather.Location, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return weather.Location{}, errNotFound
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s/%s", g.baseURL, url.PathEscape(zip))
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, cancel, err := doRequest(ctx, g.httpCfg, buildRequest)
	if err != nil {
		return weather.Location{}, err
	}
	defer cancel()
	defer resp.Body.Close()

	var payload struct {
		Places []struct {
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
			PlaceName string `json:"place name"`
			State     string `json:"state abbreviation"`
		} `json:"places"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Location{}, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(payload.Places) == 0 {
		return weather.Location{}, fmt.Errorf("geocoder response has no places")
	}

	place := payload.Places[0]
	lat, err := strconv.ParseFloat(strings.TrimSpace(place.Latitude), 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("parse latitude %q: %w", place.Latitude, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(place.Longitude), 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("parse longitude %q: %w", place.Longitude, err)
	}

	return weather.Location{
		Latitude:  lat,
		Longitude: lon,
		PlaceName: place.PlaceName,
		State:     place.State,
	}, nil
}
