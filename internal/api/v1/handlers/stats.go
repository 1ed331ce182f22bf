package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/services"
)

// StatsHandler exposes provider statistics
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get returns success rates and latencies per provider
// @Summary Provider statistics
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatsResponse{OverallStats: h.statsService.Overall()})
}
