package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recruitbase/recruitbase-api/internal/services"
)

type DashboardHandler struct {
	DashboardService *services.DashboardService
}

func NewDashboardHandler(d *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{DashboardService: d}
}

// Stats serves the aggregate dashboard for one calendar year,
// defaulting to the current one. A bad year parameter falls back to
// the default rather than erroring, same policy as list filters.
func (h *DashboardHandler) Stats(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		year = time.Now().Year()
	}

	out, err := h.DashboardService.Stats(c.Request.Context(), tenantID(c), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
