package controller

import "github.com/labstack/echo/v4"

type AdvisoryController interface {
	RecommendCrop(c echo.Context) error
	PlanBudget(c echo.Context) error
	ExportBudget(c echo.Context) error
	AnalyzeDisease(c echo.Context) error
	History(c echo.Context) error
}
