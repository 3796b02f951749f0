package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Claim records a settled payout. A user claims at most once per
// delulu, enforced by the composite unique index alongside the tx-hash
// idempotency key.
type Claim struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index;uniqueIndex:idx_claims_delulu_user" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DeluluID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_claims_delulu_user" json:"delulu_id"`
	Delulu    *Delulu         `gorm:"foreignKey:DeluluID" json:"delulu,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(30,9);not null" json:"amount"`
	TxHash    string          `gorm:"size:66;not null;uniqueIndex" json:"tx_hash"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Claim) TableName() string {
	return "claims"
}

// CreateClaimRequest represents a verified on-chain claim event.
type CreateClaimRequest struct {
	UserAddress string `json:"user_address" binding:"required"`
	DeluluID    string `json:"delulu_id" binding:"required"` // on-chain id
	Amount      string `json:"amount" binding:"required"`
	TxHash      string `json:"tx_hash" binding:"required"`
}
