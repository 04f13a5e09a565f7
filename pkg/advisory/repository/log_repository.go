package repository

import (
	"context"
	"errors"
	"time"

	"agrow/entities"
)

var ErrNotFound = errors.New("not found")

// LogRepository stores one RecommendationLog row per engine request.
type LogRepository interface {
	Create(ctx context.Context, l *entities.RecommendationLog) error
	FindByID(ctx context.Context, id, uid string) (*entities.RecommendationLog, error)
	List(ctx context.Context, uid, kind string, limit int) ([]entities.RecommendationLog, error)
	CountSince(ctx context.Context, uid string, since time.Time) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
