package repositories

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// resetSequence makes the next generated key for table start at 1 again.
// Callers must hold a transaction in which the table was observed empty.
func resetSequence(tx *gorm.DB, table, column string) error {
	var err error
	switch tx.Dialector.Name() {
	case "postgres":
		err = tx.Exec("SELECT setval(pg_get_serial_sequence(?, ?), 1, false)", table, column).Error
	case "sqlite":
		err = tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
	default:
		log.Printf("repositories: id reset not supported for dialect %s", tx.Dialector.Name())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to reset id sequence for %s: %w", table, err)
	}
	return nil
}

// syncSequence moves a postgres sequence past the highest existing key.
// sqlite AUTOINCREMENT already tracks the maximum.
func syncSequence(tx *gorm.DB, table, column string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	sql := fmt.Sprintf("SELECT setval(pg_get_serial_sequence(?, ?), COALESCE((SELECT MAX(%s) FROM %s), 1))", column, table)
	if err := tx.Exec(sql, table, column).Error; err != nil {
		return fmt.Errorf("failed to sync id sequence for %s: %w", table, err)
	}
	return nil
}
