package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeluluState is the derived lifecycle state of a prediction. Only the
// resolved/cancelled flags are persisted; Active and StakingClosed are
// functions of wall-clock time vs the staking deadline.
type DeluluState string

const (
	DeluluStateActive        DeluluState = "ACTIVE"
	DeluluStateStakingClosed DeluluState = "STAKING_CLOSED"
	DeluluStateResolved      DeluluState = "RESOLVED"
	DeluluStateCancelled     DeluluState = "CANCELLED"
)

// ParseDeluluState maps an external state string to a DeluluState.
func ParseDeluluState(s string) (DeluluState, bool) {
	switch DeluluState(s) {
	case DeluluStateActive, DeluluStateStakingClosed, DeluluStateResolved, DeluluStateCancelled:
		return DeluluState(s), true
	}
	return "", false
}

// Delulu represents a single on-chain prediction ("vision board").
// The two stake totals are denormalized running sums over the stakes
// table and are only ever touched inside the stake-creation transaction.
type Delulu struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OnChainID          int64           `gorm:"uniqueIndex;not null" json:"on_chain_id,string"`
	ContentHash        string          `gorm:"size:255;not null" json:"content_hash"`
	Content            *string         `gorm:"type:text" json:"content,omitempty"`
	CreatorID          uint            `gorm:"not null;index" json:"creator_id"`
	Creator            *User           `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	StakingDeadline    time.Time       `gorm:"not null;index" json:"staking_deadline"`
	ResolutionDeadline time.Time       `gorm:"not null" json:"resolution_deadline"`
	TotalBelieverStake decimal.Decimal `gorm:"type:decimal(30,9);not null;default:0" json:"total_believer_stake"`
	TotalDoubterStake  decimal.Decimal `gorm:"type:decimal(30,9);not null;default:0" json:"total_doubter_stake"`
	IsResolved         bool            `gorm:"not null;default:false;index" json:"is_resolved"`
	IsCancelled        bool            `gorm:"not null;default:false;index" json:"is_cancelled"`
	Outcome            *bool           `json:"outcome,omitempty"`
	GatekeeperEnabled  bool            `gorm:"not null;default:false" json:"gatekeeper_enabled"`
	GatekeeperType     *string         `gorm:"size:100" json:"gatekeeper_type,omitempty"`
	GatekeeperValue    *string         `gorm:"size:255" json:"gatekeeper_value,omitempty"`
	GatekeeperLabel    *string         `gorm:"size:255" json:"gatekeeper_label,omitempty"`
	BgImageURL         *string         `gorm:"size:500" json:"bg_image_url,omitempty"`
	CreatedAt          time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Delulu) TableName() string {
	return "delulus"
}

// State derives the lifecycle state at the given instant. Precedence:
// cancelled, then resolved, then the staking deadline. Pure; never
// cached in storage.
func (d *Delulu) State(now time.Time) DeluluState {
	switch {
	case d.IsCancelled:
		return DeluluStateCancelled
	case d.IsResolved:
		return DeluluStateResolved
	case !now.Before(d.StakingDeadline):
		return DeluluStateStakingClosed
	default:
		return DeluluStateActive
	}
}

// TotalStake returns the combined believer and doubter totals.
func (d *Delulu) TotalStake() decimal.Decimal {
	return d.TotalBelieverStake.Add(d.TotalDoubterStake)
}

// GatekeeperInput is the optional eligibility gate on a new delulu.
type GatekeeperInput struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
	Label string `json:"label"`
}

// CreateDeluluRequest represents a verified on-chain creation event.
// OnChainID travels as a string to survive JSON number precision.
type CreateDeluluRequest struct {
	OnChainID          string           `json:"on_chain_id" binding:"required"`
	ContentHash        string           `json:"content_hash" binding:"required"`
	Content            *string          `json:"content"`
	CreatorAddress     string           `json:"creator_address" binding:"required"`
	StakingDeadline    time.Time        `json:"staking_deadline" binding:"required"`
	ResolutionDeadline time.Time        `json:"resolution_deadline" binding:"required"`
	BgImageURL         *string          `json:"bg_image_url"`
	Gatekeeper         *GatekeeperInput `json:"gatekeeper"`
}

// ResolveDeluluRequest carries a resolution event from the chain.
type ResolveDeluluRequest struct {
	Outcome *bool `json:"outcome" binding:"required"`
}

// DeluluResponse is a Delulu plus its derived fields.
type DeluluResponse struct {
	Delulu
	State      DeluluState     `json:"state"`
	TotalStake decimal.Decimal `json:"total_stake"`
}

// NewDeluluResponse attaches the derived state and combined total.
func NewDeluluResponse(d Delulu, now time.Time) DeluluResponse {
	return DeluluResponse{
		Delulu:     d,
		State:      d.State(now),
		TotalStake: d.TotalStake(),
	}
}
