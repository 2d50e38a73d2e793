package repositories

import "sproutlog/internal/models"

// GardenRepository defines the interface for garden data access.
type GardenRepository interface {
	Create(garden *models.Garden) error
	ListByUser(userID uint) ([]models.Garden, error)
	GetByID(id uint) (*models.Garden, error)
}
