package models

// Species is read-only reference data describing a plant variety.
type Species struct {
	ID             uint   `json:"id" yaml:"id" gorm:"column:species_id;primaryKey"`
	CommonName     string `json:"common_name" yaml:"common_name" gorm:"type:varchar(100);not null"`
	ScientificName string `json:"scientific_name" yaml:"scientific_name" gorm:"type:varchar(150)"`
}

func (Species) TableName() string {
	return "ref_species"
}
