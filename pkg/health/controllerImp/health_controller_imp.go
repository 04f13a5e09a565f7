package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrow/pkg/health/controller"
)

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
	version string
}

func New(db *gorm.DB, version string) controller.HealthController {
	return &HealthCtrl{db: db, started: time.Now(), version: version}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) ping(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	db := h.ping(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"version":    h.version,
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     map[string]any{"database": db},
		"time":       time.Now().Format(time.RFC3339),
	})
}
