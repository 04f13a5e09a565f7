package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrow/pkg/auth/controller"
	"agrow/pkg/auth/service"
	"agrow/pkg/logging"
	"agrow/pkg/middleware"
	"agrow/pkg/session"
)

type authCtrl struct{ s service.AuthService }

func NewAuthController(s service.AuthService) controller.AuthController { return &authCtrl{s} }

// DevLogin switches the dev cookie to ?uid=. Only routed in dev mode.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = middleware.DefaultUID
	}
	c.SetCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	s, _ := session.From(c)
	return c.JSON(http.StatusOK, s)
}

func (h *authCtrl) SetPreference(c echo.Context) error {
	var body struct {
		Language string `json:"language"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.s.SetLanguage(c.Request().Context(), session.UserID(c), body.Language)
	if err != nil {
		if errors.Is(err, service.ErrInvalidField) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		logging.Log.WithError(err).Error("[auth] preference not saved")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}
