package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delulu-backend/internal/services"
)

// StatsHandler handles the aggregation view endpoints
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetLeaderboard returns a ranked leaderboard for the requested type
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	lbType, err := services.ParseLeaderboardType(c.DefaultQuery("type", "stakers"))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.stats.GetLeaderboard(lbType, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"type":    lbType,
		"data":    entries,
		"count":   len(entries),
	})
}

// GetPlatformStats returns the platform-wide totals
func (h *StatsHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.stats.GetPlatformStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetUserStats returns the totals for a single wallet address
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	stats, err := h.stats.GetUserStats(c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
