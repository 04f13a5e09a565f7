package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrow/entities"
	"agrow/pkg/chat/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChatRepository { return &repo{db} }

func (r *repo) Create(ctx context.Context, m *entities.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repo) Recent(ctx context.Context, uid string, limit int) ([]entities.ChatMessage, error) {
	ms := []entities.ChatMessage{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
	return ms, nil
}
