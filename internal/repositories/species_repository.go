package repositories

import "sproutlog/internal/models"

// SpeciesRepository reads the species reference table. Seed is only used by
// the out-of-band loader.
type SpeciesRepository interface {
	GetAll() ([]models.Species, error)
	GetByID(id uint) (*models.Species, error)
	Seed(species []models.Species) (int, error)
}
