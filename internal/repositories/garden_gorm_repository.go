package repositories

import (
	"errors"
	"fmt"

	"sproutlog/internal/models"

	"gorm.io/gorm"
)

// GORMGardenRepository is a GORM implementation of GardenRepository.
type GORMGardenRepository struct {
	db *gorm.DB
}

func NewGORMGardenRepository(db *gorm.DB) *GORMGardenRepository {
	return &GORMGardenRepository{db: db}
}

func (r *GORMGardenRepository) Create(garden *models.Garden) error {
	if err := r.db.Create(garden).Error; err != nil {
		return fmt.Errorf("failed to create garden %q: %w", garden.Name, err)
	}
	return nil
}

// ListByUser returns the user's gardens in creation order.
func (r *GORMGardenRepository) ListByUser(userID uint) ([]models.Garden, error) {
	gardens := []models.Garden{}
	if err := r.db.Where("user_id = ?", userID).Order("garden_id ASC").Find(&gardens).Error; err != nil {
		return nil, fmt.Errorf("failed to list gardens for user %d: %w", userID, err)
	}
	return gardens, nil
}

func (r *GORMGardenRepository) GetByID(id uint) (*models.Garden, error) {
	var garden models.Garden
	if err := r.db.First(&garden, "garden_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("garden with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get garden by ID %d: %w", id, err)
	}
	return &garden, nil
}
