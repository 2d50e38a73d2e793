package repositories

import (
	"time"

	"sproutlog/internal/models"
)

// WeatherRepository stores one forecast summary per zip code and date.
type WeatherRepository interface {
	Upsert(record *models.DailyWeather) error
	GetByZipAndDate(zip string, date time.Time) (*models.DailyWeather, error)
}
