package repositories

import "sproutlog/internal/models"

// InventoryRepository defines the interface for plant inventory data access.
type InventoryRepository interface {
	Create(entry *models.InventoryEntry) error
	List(userID uint, nicknameFilter string) ([]models.InventoryView, error)
	SetHarvested(id uint) error
	Delete(id uint) error
	OwnerOf(id uint) (uint, error)
}
