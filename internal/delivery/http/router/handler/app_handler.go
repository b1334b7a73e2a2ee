// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"demoapp/internal/delivery/http/response"
	"demoapp/internal/util"

	"github.com/labstack/echo/v4"
)

// Root serves the static application descriptor.
func Root(c echo.Context) error {
	return response.Success(c, http.StatusOK, util.GetAppInfo(), "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
