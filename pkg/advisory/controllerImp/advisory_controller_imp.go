package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrow/pkg/advisory/controller"
	"agrow/pkg/advisory/service"
	"agrow/pkg/logging"
	"agrow/pkg/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdvisoryCtrl struct{ s service.AdvisoryService }

func New(s service.AdvisoryService) controller.AdvisoryController { return &AdvisoryCtrl{s} }

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	logging.Log.WithError(err).WithField("path", c.Path()).Error("[advisory] request failed")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (h *AdvisoryCtrl) RecommendCrop(c echo.Context) error {
	var req service.CropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.RecommendCrop(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdvisoryCtrl) PlanBudget(c echo.Context) error {
	var req service.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.PlanBudget(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdvisoryCtrl) ExportBudget(c echo.Context) error {
	id := c.Param("id")
	b, err := h.s.ExportBudget(c.Request().Context(), session.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="budget-plan-%s.xlsx"`, id))
	return c.Blob(http.StatusOK, xlsxMIME, b)
}

// AnalyzeDisease answers 200 even when the analysis itself fails.
func (h *AdvisoryCtrl) AnalyzeDisease(c echo.Context) error {
	var req service.DiseaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.AnalyzeDisease(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdvisoryCtrl) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.s.History(c.Request().Context(), session.UserID(c), c.QueryParam("kind"), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
