package weather

import "context"

// Geocoder resolves a postal code into coordinates. Implementations never
// fail; unresolvable codes map to a fallback Location.
type Geocoder interface {
	Resolve(ctx context.Context, zip string) Location
}

// Forecaster fetches today's forecast for a coordinate pair. Any failure is
// reported as an error wrapping ErrUnavailable.
type Forecaster interface {
	Fetch(ctx context.Context, lat, lon float64) (*DailySummary, error)
}
