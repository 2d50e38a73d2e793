package models

// Garden is a named growing area owned by a single user.
type Garden struct {
	ID     uint   `json:"id" gorm:"column:garden_id;primaryKey"`
	UserID uint   `json:"user_id" gorm:"index;not null"`
	User   *User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Name   string `json:"name" gorm:"type:varchar(100);not null"`
}

func (Garden) TableName() string {
	return "gardens"
}

// DefaultGardenNames are created for a new user when no names are supplied.
var DefaultGardenNames = []string{"Backyard", "Front Yard", "Porch", "Greenhouse"}
