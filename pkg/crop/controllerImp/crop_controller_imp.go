package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrow/pkg/crop/controller"
	"agrow/pkg/crop/service"
	"agrow/pkg/logging"
	"agrow/pkg/session"
)

type CropCtrl struct{ s service.CropService }

func New(s service.CropService) controller.CropController { return &CropCtrl{s} }

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	logging.Log.WithError(err).WithField("path", c.Path()).Error("[crop] request failed")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (h *CropCtrl) Create(c echo.Context) error {
	var in service.CropInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.Create(c.Request().Context(), session.UserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CropCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context(), session.UserID(c), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Get(c echo.Context) error {
	out, err := h.s.Get(c.Request().Context(), session.UserID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Patch(c echo.Context) error {
	var p service.CropPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.Update(c.Request().Context(), session.UserID(c), c.Param("id"), p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), session.UserID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
