package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"agrow/entities"
	"agrow/pkg/advisory/repository"
)

type logRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LogRepository { return &logRepo{db} }

func (r *logRepo) Create(ctx context.Context, l *entities.RecommendationLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) FindByID(ctx context.Context, id, uid string) (*entities.RecommendationLog, error) {
	var l entities.RecommendationLog
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *logRepo) List(ctx context.Context, uid, kind string, limit int) ([]entities.RecommendationLog, error) {
	out := []entities.RecommendationLog{}
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Order("created_at DESC").Find(&out).Error
}

func (r *logRepo) CountSince(ctx context.Context, uid string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.RecommendationLog{}).
		Where("user_id = ? AND created_at >= ?", uid, since).
		Count(&n).Error
	return n, err
}

func (r *logRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entities.RecommendationLog{})
	return res.RowsAffected, res.Error
}
