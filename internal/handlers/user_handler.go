package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delulu-backend/internal/models"
	"delulu-backend/internal/services"
)

// UserHandler handles user endpoints
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// FindOrCreateUser returns the user for an address, creating it on
// first sight. Populated optional fields are never overwritten.
func (h *UserHandler) FindOrCreateUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetUser returns a user by wallet address
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByAddress(c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
