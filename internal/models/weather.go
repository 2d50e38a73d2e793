package models

import "time"

// DailyWeather is the cached forecast summary for a zip code on one date.
type DailyWeather struct {
	ID                  uint      `json:"-" gorm:"column:weather_id;primaryKey"`
	ZipCode             string    `json:"zip_code" gorm:"type:varchar(10);not null;uniqueIndex:idx_weather_zip_date"`
	RecordDate          time.Time `json:"record_date" gorm:"type:date;not null;uniqueIndex:idx_weather_zip_date"`
	TempMaxF            float64   `json:"temp_max_f" gorm:"column:temp_max_f"`
	TempMinF            float64   `json:"temp_min_f" gorm:"column:temp_min_f"`
	PrecipitationInches float64   `json:"precipitation_inches" gorm:"column:precipitation_inches"`
	WindSpeedMph        float64   `json:"wind_speed_mph" gorm:"column:wind_speed_mph"`
}

func (DailyWeather) TableName() string {
	return "bg_weather_daily"
}
