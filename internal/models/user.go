package models

import (
	"time"
)

// User represents a wallet-identified user. Rows are created on first
// sight of an address and never deleted; optional social fields are
// only ever backfilled, never blanked.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletAddress string    `gorm:"uniqueIndex;not null" json:"wallet_address"`
	XID           *string   `gorm:"uniqueIndex" json:"x_id,omitempty"`
	XUsername     *string   `gorm:"uniqueIndex" json:"x_username,omitempty"`
	DisplayName   *string   `gorm:"size:255" json:"display_name,omitempty"`
	AvatarURL     *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FindOrCreateUserRequest carries the optional identity fields that may
// accompany a wallet address on first contact.
type FindOrCreateUserRequest struct {
	WalletAddress string  `json:"wallet_address" binding:"required"`
	XID           *string `json:"x_id"`
	XUsername     *string `json:"x_username"`
	DisplayName   *string `json:"display_name"`
	AvatarURL     *string `json:"avatar_url"`
}
