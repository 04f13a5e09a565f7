package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie  = "AGROW_UID"
	UIDHeader  = "X-User-Id"
	DefaultUID = "U_DEV_DEFAULT"
)

// DevLogin keeps a uid in a cookie. A ?uid= query switches user; with
// neither, everyone is DefaultUID.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(UIDCookie); err == nil {
				uid = ck.Value
			}
			if q := strings.TrimSpace(c.QueryParam("uid")); q != "" && q != uid {
				uid = q
				c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/"})
			}
			if uid == "" {
				uid = DefaultUID
				c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// Proxy trusts the X-User-Id header set by the hosted auth provider in front
// of the service. Requests without it get 401.
func Proxy() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := strings.TrimSpace(c.Request().Header.Get(UIDHeader))
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// Auth picks the middleware for AUTH_MODE. Anything but "proxy" is dev mode.
func Auth(mode string) echo.MiddlewareFunc {
	if mode == "proxy" {
		return Proxy()
	}
	return DevLogin()
}
