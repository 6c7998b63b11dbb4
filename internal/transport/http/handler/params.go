package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"goforum/internal/app"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePageOptions reads page/limit query parameters; anything absent
// or non-numeric falls back to the service defaults.
func parsePageOptions(c *gin.Context) app.PageOptions {
	var opts app.PageOptions
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	return opts
}
