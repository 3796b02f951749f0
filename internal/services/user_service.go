package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"delulu-backend/internal/models"
	"delulu-backend/internal/onchain"
)

// UserService handles user-related business logic
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// FindOrCreateByAddress returns the user for the given wallet address,
// creating the row on first sight. An existing record is returned
// unchanged except that blank optional fields are backfilled from the
// request; populated fields are never overwritten.
func (s *UserService) FindOrCreateByAddress(req *models.FindOrCreateUserRequest) (*models.User, error) {
	address, ok := onchain.NormalizeAddress(req.WalletAddress)
	if !ok {
		return nil, ErrInvalidAddress
	}

	var user models.User
	err := s.db.Where("wallet_address = ?", address).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			WalletAddress: address,
			XID:           req.XID,
			XUsername:     req.XUsername,
			DisplayName:   req.DisplayName,
			AvatarURL:     req.AvatarURL,
		}
		if err := s.db.Create(&user).Error; err != nil {
			// Lost a race against a concurrent first-sight create.
			if findErr := s.db.Where("wallet_address = ?", address).First(&user).Error; findErr != nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, nil
		}
		log.Info().Str("address", address).Uint("user_id", user.ID).Msg("user created")
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if user.XID == nil && req.XID != nil {
		updates["x_id"] = *req.XID
	}
	if user.XUsername == nil && req.XUsername != nil {
		updates["x_username"] = *req.XUsername
	}
	if user.DisplayName == nil && req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if user.AvatarURL == nil && req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to backfill user fields: %w", err)
		}
	}

	return &user, nil
}

// GetByAddress retrieves a user by wallet address
func (s *UserService) GetByAddress(address string) (*models.User, error) {
	normalized, ok := onchain.NormalizeAddress(address)
	if !ok {
		return nil, ErrInvalidAddress
	}

	var user models.User
	if err := s.db.Where("wallet_address = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
