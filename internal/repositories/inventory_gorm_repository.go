package repositories

import (
	"fmt"
	"strings"

	"sproutlog/internal/models"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{db: db}
}

// Create inserts a new entry. An empty status is stored as Growing.
func (r *GORMInventoryRepository) Create(entry *models.InventoryEntry) error {
	if entry.Status == "" {
		entry.Status = models.StatusGrowing
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to add plant %q: %w", entry.Nickname, err)
	}
	return nil
}

// List returns the user's plants across all of their gardens, oldest entry
// first. A non-empty filter keeps only nicknames containing it, ignoring case.
func (r *GORMInventoryRepository) List(userID uint, nicknameFilter string) ([]models.InventoryView, error) {
	query := squirrel.Select(
		"p.inventory_id",
		"p.nickname",
		"r.common_name",
		"p.date_planted",
		"p.status",
		"g.name AS garden_name",
	).
		From("plants_inventory p").
		Join("ref_species r ON p.species_id = r.species_id").
		Join("gardens g ON p.garden_id = g.garden_id").
		Where(squirrel.Eq{"g.user_id": userID}).
		OrderBy("p.inventory_id ASC")

	if nicknameFilter != "" {
		// Both sides are folded by the database so sqlite's ASCII-only LOWER
		// treats them alike.
		pattern := "%" + escapeLike(nicknameFilter) + "%"
		query = query.Where(`LOWER(p.nickname) LIKE LOWER(?) ESCAPE '\'`, pattern)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory query: %w", err)
	}

	rows := []models.InventoryView{}
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %d: %w", userID, err)
	}
	return rows, nil
}

// SetHarvested marks the entry harvested. Repeating the call is a no-op.
func (r *GORMInventoryRepository) SetHarvested(id uint) error {
	res := r.db.Model(&models.InventoryEntry{}).
		Where("inventory_id = ?", id).
		Update("status", models.StatusHarvested)
	if res.Error != nil {
		return fmt.Errorf("failed to harvest plant %d: %w", id, res.Error)
	}
	return nil
}

// Delete removes the entry. When that empties the table the id generator is
// reset to 1 inside the same transaction.
func (r *GORMInventoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.InventoryEntry{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete plant %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("plant with ID %d: %w", id, ErrNotFound)
		}

		var remaining int64
		if err := tx.Model(&models.InventoryEntry{}).Count(&remaining).Error; err != nil {
			return fmt.Errorf("failed to count inventory: %w", err)
		}
		if remaining > 0 {
			return nil
		}
		return resetSequence(tx, models.InventoryEntry{}.TableName(), "inventory_id")
	})
}

// OwnerOf returns the ID of the user whose garden holds the entry.
func (r *GORMInventoryRepository) OwnerOf(id uint) (uint, error) {
	var owners []uint
	err := r.db.Table("plants_inventory p").
		Joins("JOIN gardens g ON g.garden_id = p.garden_id").
		Where("p.inventory_id = ?", id).
		Pluck("g.user_id", &owners).Error
	if err != nil {
		return 0, fmt.Errorf("failed to look up owner of plant %d: %w", id, err)
	}
	if len(owners) == 0 {
		return 0, fmt.Errorf("plant with ID %d: %w", id, ErrNotFound)
	}
	return owners[0], nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
