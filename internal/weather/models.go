package weather

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by a Forecaster when no usable daily summary
// could be produced. Callers skip the weather write rather than failing.
var ErrUnavailable = errors.New("weather data unavailable")

// UnknownPlace marks a Location that came from the fallback coordinates.
const UnknownPlace = "unknown"

// Location is a resolved zip code.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"place_name"`
	State     string  `json:"state,omitempty"`
}

// Display returns "Place, ST", or just the place name when no state is known.
func (l Location) Display() string {
	if l.State == "" {
		return l.PlaceName
	}
	return fmt.Sprintf("%s, %s", l.PlaceName, l.State)
}

// IsFallback reports whether the location is the fixed fallback.
func (l Location) IsFallback() bool {
	return l.PlaceName == UnknownPlace
}

// DailySummary is today's forecast in imperial units.
type DailySummary struct {
	MaxF    float64 `json:"max_f"`
	MinF    float64 `json:"min_f"`
	RainIn  float64 `json:"rain_in"`
	WindMph float64 `json:"wind_mph"`
}

// Banner renders the summary the way the dashboard header shows it.
func Banner(loc string, zip string, s *DailySummary) string {
	if s == nil {
		return "Weather Data Unavailable"
	}
	return fmt.Sprintf("%s (%s) | High: %.1f°F  Low: %.1f°F | Rain: %.2f in",
		loc, zip, s.MaxF, s.MinF, s.RainIn)
}
