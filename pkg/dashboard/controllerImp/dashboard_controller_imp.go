package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrow/pkg/dashboard/controller"
	"agrow/pkg/dashboard/service"
	"agrow/pkg/logging"
	"agrow/pkg/session"
)

type DashboardCtrl struct{ s service.DashboardService }

func New(s service.DashboardService) controller.DashboardController { return &DashboardCtrl{s} }

func (h *DashboardCtrl) Summary(c echo.Context) error {
	uid := session.UserID(c)
	out, err := h.s.Summary(c.Request().Context(), uid)
	if err != nil {
		logging.Log.WithError(err).WithField("uid", uid).Error("[dashboard] summary failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
