package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "UP",
		"timestamp": nowStamp(),
	})
}

// Info identifies the service.
func Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "portfolio-backend",
		"version": "1.0.0",
	})
}
