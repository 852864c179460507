package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

const welcomeMessage = "Welcome to the MEN-REST-API"

// WelcomeResponse is the static liveness payload.
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to the MEN-REST-API"`
}

// PingFunc checks a backing dependency.
type PingFunc func(ctx context.Context) error

// HealthHandler serves the welcome and health routes.
type HealthHandler struct {
	pings []PingFunc
}

// NewHealthHandler creates a health handler that runs every ping on /healthz.
func NewHealthHandler(pings ...PingFunc) *HealthHandler {
	return &HealthHandler{pings: pings}
}

// Welcome godoc
// @Summary Welcome message
// @Tags health
// @Produce json
// @Success 200 {object} WelcomeResponse
// @Router / [get]
func (h *HealthHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, WelcomeResponse{Message: welcomeMessage})
}

// Healthz reports "ok" when every dependency answers its ping.
func (h *HealthHandler) Healthz(c echo.Context) error {
	for _, ping := range h.pings {
		if err := ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, err.Error())
		}
	}
	return c.String(http.StatusOK, "ok")
}
