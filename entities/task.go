package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case "low", "medium", "high":
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	CropID      *string    `gorm:"index;size:36" json:"crop_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	Priority    string     `gorm:"default:medium" json:"priority"`
	Status      string     `gorm:"index;default:pending" json:"status"` // pending|in-progress|completed
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	return nil
}
