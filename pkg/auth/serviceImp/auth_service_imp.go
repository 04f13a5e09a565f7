package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"agrow/entities"
	"agrow/pkg/auth/repository"
	"agrow/pkg/auth/service"
	"agrow/pkg/session"
)

type authSvc struct{ r repository.PreferenceRepository }

func New(r repository.PreferenceRepository) service.AuthService { return &authSvc{r} }

func (s *authSvc) SetLanguage(ctx context.Context, uid, lang string) (*entities.UserPreference, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !session.ValidLanguage(lang) {
		return nil, fmt.Errorf("%w: language must be one of %s", service.ErrInvalidField, strings.Join(session.Languages, ", "))
	}
	p := &entities.UserPreference{UserID: uid, Language: lang}
	if err := s.r.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
