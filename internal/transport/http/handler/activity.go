package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goforum/internal/app"
	"goforum/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	activities, err := h.activityService.ListRecent(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list activities failed")
		return
	}
	response.OK(c, activities)
}
