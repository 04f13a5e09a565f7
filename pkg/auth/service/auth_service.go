package service

import (
	"context"
	"errors"

	"agrow/entities"
)

var ErrInvalidField = errors.New("invalid field")

type AuthService interface {
	SetLanguage(ctx context.Context, uid, lang string) (*entities.UserPreference, error)
}
