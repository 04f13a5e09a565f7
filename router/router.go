package router

import (
	"github.com/labstack/echo/v4"

	advisory "agrow/pkg/advisory/controller"
	auth "agrow/pkg/auth/controller"
	chat "agrow/pkg/chat/controller"
	crop "agrow/pkg/crop/controller"
	dashboard "agrow/pkg/dashboard/controller"
	health "agrow/pkg/health/controller"
	kb "agrow/pkg/kb/controller"
	task "agrow/pkg/task/controller"
)

type Handlers struct {
	Auth      auth.AuthController
	Crop      crop.CropController
	Task      task.TaskController
	Advisory  advisory.AdvisoryController
	Chat      chat.ChatController
	KB        kb.KBController
	Dashboard dashboard.DashboardController
	Health    health.HealthController
}

type Options struct {
	// Session runs on every /api route, in order: auth first, then session.
	Session []echo.MiddlewareFunc
	// EngineLimit throttles the recommendation and disease endpoints. Optional.
	EngineLimit echo.MiddlewareFunc
	DevLogin    bool
}

func New(e *echo.Echo, h Handlers, o Options) *echo.Echo {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api", o.Session...)
	api.GET("/whoami", h.Auth.WhoAmI)
	if o.DevLogin {
		api.GET("/devlogin", h.Auth.DevLogin)
	}
	api.PUT("/preferences", h.Auth.SetPreference)
	api.GET("/dashboard", h.Dashboard.Summary)

	api.POST("/crops", h.Crop.Create)
	api.GET("/crops", h.Crop.List)
	api.GET("/crops/:id", h.Crop.Get)
	api.PATCH("/crops/:id", h.Crop.Patch)
	api.DELETE("/crops/:id", h.Crop.Delete)

	api.POST("/tasks", h.Task.Create)
	api.GET("/tasks", h.Task.List)
	api.GET("/tasks/:id", h.Task.Get)
	api.PATCH("/tasks/:id", h.Task.Patch)
	api.DELETE("/tasks/:id", h.Task.Delete)

	var limit []echo.MiddlewareFunc
	if o.EngineLimit != nil {
		limit = append(limit, o.EngineLimit)
	}
	api.POST("/recommendations/crop", h.Advisory.RecommendCrop, limit...)
	api.POST("/recommendations/budget", h.Advisory.PlanBudget, limit...)
	api.POST("/diseases/analyze", h.Advisory.AnalyzeDisease, limit...)
	api.GET("/recommendations/budget/:id/export", h.Advisory.ExportBudget)
	api.GET("/recommendations/history", h.Advisory.History)

	api.POST("/chat", h.Chat.Send)
	api.GET("/chat/history", h.Chat.History)

	api.POST("/kb/ingest", h.KB.IngestText)
	api.POST("/kb/ingest/url", h.KB.IngestURL)
	api.GET("/kb/search", h.KB.Search)
	api.GET("/kb/docs", h.KB.ListDocs)
	return e
}
