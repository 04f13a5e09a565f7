package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agrow/entities"
	"agrow/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cropRepo) FindByID(ctx context.Context, id, uid string) (*entities.Crop, error) {
	var c entities.Crop
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) List(ctx context.Context, uid, status string) ([]entities.Crop, error) {
	out := []entities.Crop{}
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Order("created_at DESC, id").Find(&out).Error
}

func (r *cropRepo) Update(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cropRepo) Delete(ctx context.Context, id, uid string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).Delete(&entities.Crop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cropRepo) CountByStatus(ctx context.Context, uid string) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Crop{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", uid).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{entities.CropGrowing: 0, entities.CropReady: 0, entities.CropHarvested: 0}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
