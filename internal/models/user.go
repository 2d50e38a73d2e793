package models

import "time"

// User represents a registered gardener.
type User struct {
	ID           uint      `json:"id" gorm:"column:user_id;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	DisplayName  string    `json:"display_name" gorm:"type:varchar(100);not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255);not null"` // bcrypt, never serialized
	ZipCode      string    `json:"zip_code" gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName pins the table name used by the rest of the schema.
func (User) TableName() string {
	return "users"
}
