package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrow/entities"
	"agrow/pkg/auth/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PreferenceRepository { return &repo{db} }

func (r *repo) Language(ctx context.Context, uid string) (string, error) {
	var p entities.UserPreference
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return p.Language, err
}

func (r *repo) Save(ctx context.Context, p *entities.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "updated_at"}),
	}).Create(p).Error
}
