package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"agrow/entities"
	"agrow/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) Create(ctx context.Context, t *entities.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) FindByID(ctx context.Context, id, uid string) (*entities.Task, error) {
	var t entities.Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List orders by due date with undated tasks last.
func (r *taskRepo) List(ctx context.Context, uid string, f repository.Filter) ([]entities.Task, error) {
	out := []entities.Task{}
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CropID != "" {
		q = q.Where("crop_id = ?", f.CropID)
	}
	err := q.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC").Find(&out).Error
	return out, err
}

func (r *taskRepo) Update(ctx context.Context, t *entities.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *taskRepo) Delete(ctx context.Context, id, uid string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).Delete(&entities.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *taskRepo) CountByStatus(ctx context.Context, uid string) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Task{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", uid).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{entities.TaskPending: 0, entities.TaskInProgress: 0, entities.TaskCompleted: 0}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

// CountOverdue counts open tasks whose due date is before now.
func (r *taskRepo) CountOverdue(ctx context.Context, uid string, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Task{}).
		Where("user_id = ? AND status <> ? AND due_date IS NOT NULL AND due_date < ?", uid, entities.TaskCompleted, now).
		Count(&n).Error
	return n, err
}
