package repositories

import (
	"errors"
	"fmt"
	"time"

	"sproutlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMWeatherRepository is a GORM implementation of WeatherRepository.
type GORMWeatherRepository struct {
	db *gorm.DB
}

func NewGORMWeatherRepository(db *gorm.DB) *GORMWeatherRepository {
	return &GORMWeatherRepository{db: db}
}

// Upsert inserts the record, or overwrites all four measurements when a row
// for the same (zip, date) already exists.
func (r *GORMWeatherRepository) Upsert(record *models.DailyWeather) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "zip_code"}, {Name: "record_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"temp_max_f", "temp_min_f", "precipitation_inches", "wind_speed_mph",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert weather for %s on %s: %w",
			record.ZipCode, record.RecordDate.Format("2006-01-02"), err)
	}
	return nil
}

func (r *GORMWeatherRepository) GetByZipAndDate(zip string, date time.Time) (*models.DailyWeather, error) {
	var record models.DailyWeather
	err := r.db.First(&record, "zip_code = ? AND record_date = ?", zip, models.Today(date)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("weather for %s on %s: %w", zip, date.Format("2006-01-02"), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get weather for %s: %w", zip, err)
	}
	return &record, nil
}
