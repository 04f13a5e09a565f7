package repository

import (
	"context"

	"agrow/entities"
)

type PreferenceRepository interface {
	// Language returns "" when the user has no stored preference.
	Language(ctx context.Context, uid string) (string, error)
	Save(ctx context.Context, p *entities.UserPreference) error
}
