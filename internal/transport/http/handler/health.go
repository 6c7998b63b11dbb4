package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"goforum/internal/bootstrap"
	"goforum/internal/transport/http/response"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	response.OK(c, gin.H{
		"status":         "ok",
		"app":            h.app.Config.App.Name,
		"env":            h.app.Config.App.Env,
		"uptime_seconds": int64(time.Since(h.app.StartedAt).Seconds()),
	})
}
