package services

import (
	"context"
	"log"
	"time"

	"sproutlog/internal/models"
	"sproutlog/internal/repositories"
	"sproutlog/internal/weather"
)

// WeatherService chains the geocoder, the forecaster and the weather table.
type WeatherService struct {
	geocoder   weather.Geocoder
	forecaster weather.Forecaster
	repo       repositories.WeatherRepository
	events     EventPublisher
	now        func() time.Time
}

func NewWeatherService(geocoder weather.Geocoder, forecaster weather.Forecaster, repo repositories.WeatherRepository, events EventPublisher) *WeatherService {
	return &WeatherService{
		geocoder:   geocoder,
		forecaster: forecaster,
		repo:       repo,
		events:     events,
		now:        time.Now,
	}
}

// Refresh resolves zip, fetches today's forecast and stores it. The summary is
// nil when the forecast could not be fetched; a failed write is only logged.
func (s *WeatherService) Refresh(ctx context.Context, zip string) (weather.Location, *weather.DailySummary) {
	loc := s.geocoder.Resolve(ctx, zip)

	summary, err := s.forecaster.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		log.Printf("Skipping weather record for zip %s: %v", zip, err)
		return loc, nil
	}

	record := &models.DailyWeather{
		ZipCode:             zip,
		RecordDate:          models.Today(s.now()),
		TempMaxF:            summary.MaxF,
		TempMinF:            summary.MinF,
		PrecipitationInches: summary.RainIn,
		WindSpeedMph:        summary.WindMph,
	}
	if err := s.repo.Upsert(record); err != nil {
		log.Printf("Failed to save weather record for zip %s: %v", zip, err)
		return loc, summary
	}

	publishEvent(s.events, EventWeatherRecorded, record)
	return loc, summary
}

// Today returns the stored record for zip and the current date.
func (s *WeatherService) Today(zip string) (*models.DailyWeather, error) {
	return s.repo.GetByZipAndDate(zip, models.Today(s.now()))
}
