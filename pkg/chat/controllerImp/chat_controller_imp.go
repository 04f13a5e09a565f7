package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrow/pkg/chat/controller"
	"agrow/pkg/chat/service"
	"agrow/pkg/logging"
	"agrow/pkg/session"
)

type ChatCtrl struct{ s service.ChatService }

func New(s service.ChatService) controller.ChatController { return &ChatCtrl{s} }

func (h *ChatCtrl) Send(c echo.Context) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	sess, _ := session.From(c)
	out, err := h.s.Send(c.Request().Context(), sess, body.Message)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) || errors.Is(err, service.ErrInvalidField) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		logging.Log.WithError(err).Error("[chat] reply failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ChatCtrl) History(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}
	ms, err := h.s.History(c.Request().Context(), session.UserID(c), limit)
	if err != nil {
		logging.Log.WithError(err).Error("[chat] history failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, ms)
}
