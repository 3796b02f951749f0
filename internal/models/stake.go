package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stake records one on-chain stake event. Immutable once created. The
// unique tx hash is the idempotency key: a given chain transaction
// produces at most one row.
type Stake struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DeluluID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"delulu_id"`
	Delulu    *Delulu         `gorm:"foreignKey:DeluluID" json:"delulu,omitempty"`
	Side      bool            `gorm:"not null" json:"side"` // true: believer, false: doubter
	Amount    decimal.Decimal `gorm:"type:decimal(30,9);not null" json:"amount"`
	TxHash    string          `gorm:"size:66;not null;uniqueIndex" json:"tx_hash"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Stake) TableName() string {
	return "stakes"
}

// CreateStakeRequest represents a verified on-chain stake event.
// Amount travels as a decimal string.
type CreateStakeRequest struct {
	UserAddress string `json:"user_address" binding:"required"`
	DeluluID    string `json:"delulu_id" binding:"required"` // on-chain id
	Amount      string `json:"amount" binding:"required"`
	Side        *bool  `json:"side" binding:"required"`
	TxHash      string `json:"tx_hash" binding:"required"`
}
