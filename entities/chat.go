package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"size:16" json:"role"`   // user|assistant
	Content   string    `json:"content"`
	Source    string    `gorm:"size:16" json:"source"` // scripted|llm
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type UserPreference struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Language  string    `gorm:"size:8" json:"language"`
	UpdatedAt time.Time `json:"updated_at"`
}
