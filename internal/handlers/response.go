package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"delulu-backend/internal/services"
)

// respondError maps service-level errors onto HTTP responses. Each
// recoverable failure gets a machine-readable code so callers can tell
// "already applied" apart from "malformed request"; anything unmapped
// is logged and surfaced as an opaque internal error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAddress),
		errors.Is(err, services.ErrInvalidTxHash),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidOnChainID),
		errors.Is(err, services.ErrInvalidDeadlines),
		errors.Is(err, services.ErrMissingContentHash),
		errors.Is(err, services.ErrInvalidLeaderboardType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_error"})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDeluluNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, services.ErrDuplicateTx):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate_tx"})
	case errors.Is(err, services.ErrDuplicateOnChainID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate_on_chain_id"})
	case errors.Is(err, services.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate_claim"})
	case errors.Is(err, services.ErrStakingClosed),
		errors.Is(err, services.ErrAlreadyResolved),
		errors.Is(err, services.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "state_conflict"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal_error"})
	}
}

// respondBadRequest reports a gin binding failure.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error(), "code": "validation_error"})
}
