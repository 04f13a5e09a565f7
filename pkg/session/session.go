package session

import "github.com/labstack/echo/v4"

const contextKey = "session"

var Languages = []string{"en", "hi", "es"}

func ValidLanguage(l string) bool {
	for _, x := range Languages {
		if x == l {
			return true
		}
	}
	return false
}

// Session is the per-request view of who is calling and in which language.
// It is built by middleware.Session and never shared between requests.
type Session struct {
	UserID   string `json:"uid"`
	Language string `json:"language"`
}

func Set(c echo.Context, s Session) { c.Set(contextKey, s) }

// From returns the request's session. ok is false when no middleware ran.
func From(c echo.Context) (Session, bool) {
	s, ok := c.Get(contextKey).(Session)
	return s, ok && s.UserID != ""
}

// UserID is a shortcut for handlers behind the auth middleware.
func UserID(c echo.Context) string {
	s, _ := From(c)
	return s.UserID
}
