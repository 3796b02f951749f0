package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delulu-backend/internal/auth"
	"delulu-backend/internal/models"
	"delulu-backend/internal/services"
)

// AuthHandler handles wallet authentication endpoints
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// WalletLogin finds or creates the user for a wallet address and issues
// a session token. Signature verification happens in the wallet flow
// upstream; the address is accepted as verified input here.
func (h *AuthHandler) WalletLogin(c *gin.Context) {
	var req models.FindOrCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.users.FindOrCreateByAddress(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// GetMe returns the authenticated user's record
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
