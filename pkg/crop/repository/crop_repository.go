package repository

import (
	"context"
	"errors"

	"agrow/entities"
)

var ErrNotFound = errors.New("not found")

type CropRepository interface {
	Create(ctx context.Context, c *entities.Crop) error
	FindByID(ctx context.Context, id, uid string) (*entities.Crop, error)
	List(ctx context.Context, uid, status string) ([]entities.Crop, error)
	Update(ctx context.Context, c *entities.Crop) error
	Delete(ctx context.Context, id, uid string) error
	CountByStatus(ctx context.Context, uid string) (map[string]int64, error)
}
