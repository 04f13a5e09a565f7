package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	KindCrop    = "crop"
	KindBudget  = "budget"
	KindDisease = "disease"
)

// RecommendationLog is one engine request and its result, written once.
type RecommendationLog struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"index;not null" json:"user_id"`
	Kind      string         `gorm:"index;size:16" json:"kind"`
	Input     datatypes.JSON `json:"input"`
	Output    datatypes.JSON `json:"output"`
	Fallback  bool           `json:"fallback"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (l *RecommendationLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
