package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delulu-backend/internal/models"
	"delulu-backend/internal/services"
)

// StakeHandler handles stake and claim endpoints
type StakeHandler struct {
	stakes *services.StakeService
	claims *services.ClaimService
}

// NewStakeHandler creates a new StakeHandler
func NewStakeHandler(stakes *services.StakeService, claims *services.ClaimService) *StakeHandler {
	return &StakeHandler{stakes: stakes, claims: claims}
}

// CreateStake ingests an on-chain stake event
func (h *StakeHandler) CreateStake(c *gin.Context) {
	var req models.CreateStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	stake, err := h.stakes.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    stake,
	})
}

// GetStakesByDelulu returns all stakes on a delulu
func (h *StakeHandler) GetStakesByDelulu(c *gin.Context) {
	onChainID, err := services.ParseOnChainID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	stakes, err := h.stakes.ListByDelulu(onChainID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stakes,
		"count":   len(stakes),
	})
}

// CreateClaim ingests an on-chain claim event
func (h *StakeHandler) CreateClaim(c *gin.Context) {
	var req models.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	claim, err := h.claims.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    claim,
	})
}
