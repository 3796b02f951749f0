package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"delulu-backend/internal/models"
	"delulu-backend/internal/services"
)

// DeluluHandler handles delulu endpoints
type DeluluHandler struct {
	delulus *services.DeluluService
}

// NewDeluluHandler creates a new DeluluHandler
func NewDeluluHandler(delulus *services.DeluluService) *DeluluHandler {
	return &DeluluHandler{delulus: delulus}
}

// GetDelulus returns a page of delulus with optional filtering
func (h *DeluluHandler) GetDelulus(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	includeResolved := c.DefaultQuery("include_resolved", "false") == "true"

	filter := services.ListDelulusFilter{
		Limit:           limit,
		CreatorAddress:  c.Query("creator"),
		IncludeResolved: includeResolved,
	}
	if cursor := c.Query("cursor"); cursor != "" {
		parsed, err := services.ParseOnChainID(cursor)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Cursor = &parsed
	}

	page, err := h.delulus.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        page.Items,
		"count":       len(page.Items),
		"next_cursor": page.NextCursor,
	})
}

// GetDeluluByID returns a single delulu by on-chain id
func (h *DeluluHandler) GetDeluluByID(c *gin.Context) {
	onChainID, err := services.ParseOnChainID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	delulu, err := h.delulus.GetByOnChainID(onChainID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.NewDeluluResponse(*delulu, time.Now()),
	})
}

// GetDelulusByState returns a page of delulus in the given derived state
func (h *DeluluHandler) GetDelulusByState(c *gin.Context) {
	state, ok := models.ParseDeluluState(c.Param("state"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown state", "code": "validation_error"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var cursor *int64
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := services.ParseOnChainID(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		cursor = &parsed
	}

	page, err := h.delulus.ListByState(state, limit, cursor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        page.Items,
		"count":       len(page.Items),
		"next_cursor": page.NextCursor,
	})
}

// GetTrendingDelulus returns the top open delulus by activity
func (h *DeluluHandler) GetTrendingDelulus(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.delulus.Trending(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"count":   len(items),
	})
}

// CreateDelulu ingests an on-chain creation event
func (h *DeluluHandler) CreateDelulu(c *gin.Context) {
	var req models.CreateDeluluRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	delulu, err := h.delulus.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    models.NewDeluluResponse(*delulu, time.Now()),
	})
}

// ResolveDelulu ingests an on-chain resolution event
func (h *DeluluHandler) ResolveDelulu(c *gin.Context) {
	onChainID, err := services.ParseOnChainID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.ResolveDeluluRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	delulu, err := h.delulus.Resolve(onChainID, *req.Outcome)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.NewDeluluResponse(*delulu, time.Now()),
	})
}

// CancelDelulu ingests an on-chain cancellation event
func (h *DeluluHandler) CancelDelulu(c *gin.Context) {
	onChainID, err := services.ParseOnChainID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	delulu, err := h.delulus.Cancel(onChainID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.NewDeluluResponse(*delulu, time.Now()),
	})
}
