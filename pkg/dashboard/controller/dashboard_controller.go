package controller

import "github.com/labstack/echo/v4"

type DashboardController interface {
	Summary(c echo.Context) error
}
