package services

import (
	"fmt"
	"strings"

	"sproutlog/internal/models"
	"sproutlog/internal/repositories"

	"github.com/go-playground/validator/v10"
)

type CreateGardenRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// GardenService handles gardens and the species reference list.
type GardenService struct {
	gardens  repositories.GardenRepository
	species  repositories.SpeciesRepository
	validate *validator.Validate
}

func NewGardenService(gardens repositories.GardenRepository, species repositories.SpeciesRepository) *GardenService {
	return &GardenService{gardens: gardens, species: species, validate: validator.New()}
}

func (s *GardenService) ListGardens(userID uint) ([]models.Garden, error) {
	return s.gardens.ListByUser(userID)
}

func (s *GardenService) CreateGarden(userID uint, req CreateGardenRequest) (*models.Garden, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	garden := &models.Garden{UserID: userID, Name: req.Name}
	if err := s.gardens.Create(garden); err != nil {
		return nil, fmt.Errorf("failed to create garden: %w", err)
	}
	return garden, nil
}

func (s *GardenService) ListSpecies() ([]models.Species, error) {
	return s.species.GetAll()
}

// SeedSpecies loads reference species, skipping names already present.
func (s *GardenService) SeedSpecies(species []models.Species) (int, error) {
	for i, sp := range species {
		if strings.TrimSpace(sp.CommonName) == "" {
			return 0, &ValidationError{Fields: map[string]string{
				"CommonName": fmt.Sprintf("species #%d has no common name", i+1),
			}}
		}
	}
	return s.species.Seed(species)
}
