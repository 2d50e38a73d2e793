package models

import "time"

const (
	StatusGrowing   = "Growing"
	StatusHarvested = "Harvested"
)

// InventoryEntry is a single plant logged into one of a user's gardens.
type InventoryEntry struct {
	ID          uint      `json:"id" gorm:"column:inventory_id;primaryKey"`
	GardenID    uint      `json:"garden_id" gorm:"index;not null"`
	Garden      *Garden   `json:"-" gorm:"foreignKey:GardenID;references:ID"`
	SpeciesID   uint      `json:"species_id" gorm:"index;not null"`
	Species     *Species  `json:"-" gorm:"foreignKey:SpeciesID;references:ID"`
	Nickname    string    `json:"nickname" gorm:"type:varchar(100);not null"`
	DatePlanted time.Time `json:"date_planted" gorm:"column:date_planted;type:date;not null"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:Growing"` // Growing -> Harvested
}

func (InventoryEntry) TableName() string {
	return "plants_inventory"
}

// InventoryView is one row of the dashboard inventory table.
type InventoryView struct {
	ID          uint      `json:"id" gorm:"column:inventory_id"`
	Nickname    string    `json:"nickname"`
	Species     string    `json:"species" gorm:"column:common_name"`
	DatePlanted time.Time `json:"date_planted" gorm:"column:date_planted"`
	Status      string    `json:"status"`
	Garden      string    `json:"garden" gorm:"column:garden_name"`
}

// Today returns the current calendar date at midnight UTC, the form stored in
// date columns.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
