package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"agrow/pkg/logging"
	"agrow/pkg/session"
)

// PreferenceReader returns a user's stored language, or "" when none is stored.
type PreferenceReader interface {
	Language(ctx context.Context, uid string) (string, error)
}

// Session builds the request's session.Session from the uid set by Auth and
// the stored preference. A failed lookup falls back to defaultLang.
func Session(prefs PreferenceReader, defaultLang string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			s := session.Session{UserID: uid, Language: defaultLang}
			if uid != "" && prefs != nil {
				lang, err := prefs.Language(c.Request().Context(), uid)
				switch {
				case err != nil:
					logging.Log.WithError(err).WithField("uid", uid).Warn("[session] preference lookup failed")
				case lang != "":
					s.Language = lang
				}
			}
			session.Set(c, s)
			return next(c)
		}
	}
}
