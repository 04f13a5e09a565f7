package repository

import (
	"context"
	"errors"
	"time"

	"agrow/entities"
)

var ErrNotFound = errors.New("not found")

type Filter struct {
	Status string
	CropID string
}

type TaskRepository interface {
	Create(ctx context.Context, t *entities.Task) error
	FindByID(ctx context.Context, id, uid string) (*entities.Task, error)
	List(ctx context.Context, uid string, f Filter) ([]entities.Task, error)
	Update(ctx context.Context, t *entities.Task) error
	Delete(ctx context.Context, id, uid string) error
	CountByStatus(ctx context.Context, uid string) (map[string]int64, error)
	CountOverdue(ctx context.Context, uid string, now time.Time) (int64, error)
}
