package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CropGrowing   = "growing"
	CropReady     = "ready"
	CropHarvested = "harvested"
)

func ValidCropStatus(s string) bool {
	switch s {
	case CropGrowing, CropReady, CropHarvested:
		return true
	}
	return false
}

type Crop struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	UserID              string     `gorm:"index;not null" json:"user_id"`
	Name                string     `gorm:"not null" json:"name"`
	Variety             string     `json:"variety"`
	AreaAcres           float64    `json:"area_acres"`
	PlantingDate        *time.Time `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`
	Notes               string     `json:"notes"`
	Status              string     `gorm:"index;default:growing" json:"status"` // growing|ready|harvested
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (c *Crop) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CropGrowing
	}
	return nil
}
