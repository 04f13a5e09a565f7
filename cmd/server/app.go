package main

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"agrow/config"
	"agrow/pkg/ai"
	"agrow/pkg/catalog"
	"agrow/pkg/logging"
	"agrow/pkg/middleware"
	"agrow/router"

	advCtrlImp "agrow/pkg/advisory/controllerImp"
	advRepoImp "agrow/pkg/advisory/repositoryImp"
	advService "agrow/pkg/advisory/service"
	advServiceImp "agrow/pkg/advisory/serviceImp"

	authCtrlImp "agrow/pkg/auth/controllerImp"
	authRepoImp "agrow/pkg/auth/repositoryImp"
	authServiceImp "agrow/pkg/auth/serviceImp"

	chatCtrlImp "agrow/pkg/chat/controllerImp"
	chatRepoImp "agrow/pkg/chat/repositoryImp"
	chatServiceImp "agrow/pkg/chat/serviceImp"

	cropCtrlImp "agrow/pkg/crop/controllerImp"
	cropRepoImp "agrow/pkg/crop/repositoryImp"
	cropServiceImp "agrow/pkg/crop/serviceImp"

	taskCtrlImp "agrow/pkg/task/controllerImp"
	taskRepoImp "agrow/pkg/task/repositoryImp"
	taskServiceImp "agrow/pkg/task/serviceImp"

	dashCtrlImp "agrow/pkg/dashboard/controllerImp"
	dashServiceImp "agrow/pkg/dashboard/serviceImp"

	kbCtrlImp "agrow/pkg/kb/controllerImp"
	kbRepoImp "agrow/pkg/kb/repositoryImp"
	kbServiceImp "agrow/pkg/kb/serviceImp"

	healthCtrlImp "agrow/pkg/health/controllerImp"

	"agrow/pkg/jobs"
)

type app struct {
	echo      *echo.Echo
	retention *jobs.Retention
}

// engineLimiter allows rps requests per second per client IP, with a burst of
// one second's worth.
func engineLimiter(rps float64) echo.MiddlewareFunc {
	if rps <= 0 {
		return nil
	}
	store := echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     max(1, int(math.Ceil(rps))),
		ExpiresIn: 3 * time.Minute,
	})
	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, id string, err error) error {
			logging.Log.WithField("ip", id).Warn("[server] rate limited")
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		},
	})
}

// chatModel picks the hosted model for chat. OpenAI wins when both keys are
// set; with neither, chat stays scripted.
func chatModel(cfg config.AppConfig) (ai.Client, error) {
	switch {
	case cfg.LLMAPIKey != "":
		logging.Log.WithField("model", cfg.LLMModel).Info("[chat] openai client enabled")
		return ai.NewOpenAI(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel), nil
	case cfg.GeminiAPIKey != "":
		logging.Log.WithField("model", cfg.GeminiModel).Info("[chat] gemini client enabled")
		return ai.NewGemini(context.Background(), cfg.GeminiAPIKey, "", cfg.GeminiModel)
	}
	return nil, nil
}

func build(cfg config.AppConfig, db *gorm.DB) (*app, error) {
	crops, err := catalog.FromFile(cfg.CatalogFile)
	if err != nil {
		// the built-in table is served instead
		logging.Log.WithError(err).WithField("file", cfg.CatalogFile).Warn("[catalog] override not loaded")
	}

	// Repositories
	logRepo := advRepoImp.New(db)
	prefRepo := authRepoImp.New(db)
	cropRepo := cropRepoImp.New(db)
	taskRepo := taskRepoImp.New(db)

	// Knowledge base feeds chat article lookups
	kbSvc := kbServiceImp.New(kbRepoImp.New(db))

	llm, err := chatModel(cfg)
	if err != nil {
		return nil, err
	}

	retention, err := jobs.NewRetention(logRepo, cfg.RetentionDays, cfg.RetentionCron)
	if err != nil {
		return nil, err
	}

	h := router.Handlers{
		Auth: authCtrlImp.NewAuthController(authServiceImp.New(prefRepo)),
		Crop: cropCtrlImp.New(cropServiceImp.NewCropService(cropRepo)),
		Task: taskCtrlImp.New(taskServiceImp.NewTaskService(taskRepo, cropRepo)),
		Advisory: advCtrlImp.New(advServiceImp.New(advService.Deps{
			Crops: crops,
			Logs:  logRepo,
		})),
		Chat: chatCtrlImp.New(chatServiceImp.New(chatServiceImp.Deps{
			Repo: chatRepoImp.New(db),
			LLM:  llm,
			KB:   kbSvc,
		})),
		KB: kbCtrlImp.New(kbSvc, kbCtrlImp.Options{
			AllowedDomains: cfg.KBAllowed,
			MaxBytes:       cfg.KBMaxBytes,
		}),
		Dashboard: dashCtrlImp.New(dashServiceImp.New(dashServiceImp.Deps{
			Crops:   cropRepo,
			Tasks:   taskRepo,
			Overdue: taskRepo,
			Logs:    logRepo,
		})),
		Health: healthCtrlImp.New(db, version),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logging.Log))

	router.New(e, h, router.Options{
		Session: []echo.MiddlewareFunc{
			middleware.Auth(cfg.AuthMode),
			middleware.Session(prefRepo, cfg.DefaultLang),
		},
		EngineLimit: engineLimiter(cfg.RateLimitRPS),
		DevLogin:    cfg.AuthMode != "proxy",
	})
	return &app{echo: e, retention: retention}, nil
}
