package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sproutlog/internal/models"
	"sproutlog/internal/repositories"

	"github.com/go-playground/validator/v10"
)

type AddPlantRequest struct {
	Nickname  string `json:"nickname" validate:"required,max=100"`
	SpeciesID uint   `json:"species_id" validate:"required"`
	GardenID  uint   `json:"garden_id" validate:"required"`
}

type inventoryEvent struct {
	InventoryID uint   `json:"inventory_id"`
	UserID      uint   `json:"user_id"`
	Nickname    string `json:"nickname,omitempty"`
	Status      string `json:"status,omitempty"`
}

// InventoryService handles business logic for the plant inventory.
type InventoryService struct {
	inventory repositories.InventoryRepository
	gardens   repositories.GardenRepository
	species   repositories.SpeciesRepository
	events    EventPublisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventory repositories.InventoryRepository, gardens repositories.GardenRepository, species repositories.SpeciesRepository, events EventPublisher) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		gardens:   gardens,
		species:   species,
		events:    events,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// List returns the user's plants, optionally filtered by nickname.
func (s *InventoryService) List(userID uint, nicknameFilter string) ([]models.InventoryView, error) {
	return s.inventory.List(userID, strings.TrimSpace(nicknameFilter))
}

// Add plants a new entry dated today in one of the user's gardens.
func (s *InventoryService) Add(userID uint, req AddPlantRequest) (*models.InventoryEntry, error) {
	req.Nickname = strings.TrimSpace(req.Nickname)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	garden, err := s.gardens.GetByID(req.GardenID)
	if err != nil {
		return nil, err
	}
	if garden.UserID != userID {
		return nil, fmt.Errorf("garden with ID %d: %w", req.GardenID, repositories.ErrNotFound)
	}
	if _, err := s.species.GetByID(req.SpeciesID); err != nil {
		return nil, err
	}

	entry := &models.InventoryEntry{
		GardenID:    req.GardenID,
		SpeciesID:   req.SpeciesID,
		Nickname:    req.Nickname,
		DatePlanted: models.Today(s.now()),
		Status:      models.StatusGrowing,
	}
	if err := s.inventory.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to add plant: %w", err)
	}

	publishEvent(s.events, EventPlantAdded, inventoryEvent{
		InventoryID: entry.ID, UserID: userID, Nickname: entry.Nickname, Status: entry.Status,
	})
	return entry, nil
}

// Harvest marks an entry as harvested. Harvesting twice is not an error.
func (s *InventoryService) Harvest(userID, id uint) error {
	if err := s.checkOwner(userID, id); err != nil {
		return err
	}
	if err := s.inventory.SetHarvested(id); err != nil {
		return err
	}
	publishEvent(s.events, EventPlantHarvested, inventoryEvent{
		InventoryID: id, UserID: userID, Status: models.StatusHarvested,
	})
	return nil
}

// Remove deletes an entry.
func (s *InventoryService) Remove(userID, id uint) error {
	if err := s.checkOwner(userID, id); err != nil {
		return err
	}
	if err := s.inventory.Delete(id); err != nil {
		return err
	}
	publishEvent(s.events, EventPlantRemoved, inventoryEvent{InventoryID: id, UserID: userID})
	return nil
}

// checkOwner hides entries of other users behind ErrNotFound.
func (s *InventoryService) checkOwner(userID, id uint) error {
	owner, err := s.inventory.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != userID {
		return fmt.Errorf("plant with ID %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// IsNotFound reports whether err means the requested row does not exist or
// belongs to someone else.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
