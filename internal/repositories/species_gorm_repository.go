package repositories

import (
	"errors"
	"fmt"

	"sproutlog/internal/models"

	"gorm.io/gorm"
)

// GORMSpeciesRepository is a GORM implementation of SpeciesRepository.
type GORMSpeciesRepository struct {
	db *gorm.DB
}

func NewGORMSpeciesRepository(db *gorm.DB) *GORMSpeciesRepository {
	return &GORMSpeciesRepository{db: db}
}

// GetAll returns every species ordered by ID.
func (r *GORMSpeciesRepository) GetAll() ([]models.Species, error) {
	species := []models.Species{}
	if err := r.db.Order("species_id ASC").Find(&species).Error; err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	return species, nil
}

func (r *GORMSpeciesRepository) GetByID(id uint) (*models.Species, error) {
	var s models.Species
	if err := r.db.First(&s, "species_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("species with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get species by ID %d: %w", id, err)
	}
	return &s, nil
}

// Seed inserts species whose common name is not present yet and returns how
// many rows were added. Existing rows are left untouched.
func (r *GORMSpeciesRepository) Seed(species []models.Species) (int, error) {
	added := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range species {
			s := species[i]
			var count int64
			if err := tx.Model(&models.Species{}).Where("common_name = ?", s.CommonName).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check species %q: %w", s.CommonName, err)
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&s).Error; err != nil {
				return fmt.Errorf("failed to seed species %q: %w", s.CommonName, err)
			}
			added++
		}
		if added == 0 {
			return nil
		}
		// Seed files may carry explicit IDs; keep the generator ahead of them.
		return syncSequence(tx, models.Species{}.TableName(), "species_id")
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
