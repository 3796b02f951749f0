package models

import (
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one ranked row of a leaderboard projection.
// Total carries summed amounts for the stakers/earners boards and is
// zero for the count-based ones.
type LeaderboardEntry struct {
	Rank          int             `json:"rank" gorm:"-"`
	UserID        uint            `json:"user_id"`
	WalletAddress string          `json:"wallet_address"`
	XUsername     *string         `json:"x_username,omitempty"`
	DisplayName   *string         `json:"display_name,omitempty"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
}

// PlatformStats is the single-pass aggregate over all delulus, stakes
// and users. TVL equals the grand sum of all stake amounts.
type PlatformStats struct {
	TVL                decimal.Decimal `json:"tvl"`
	TotalBelieverStake decimal.Decimal `json:"total_believer_stake"`
	TotalDoubterStake  decimal.Decimal `json:"total_doubter_stake"`
	TotalDelulus       int64           `json:"total_delulus"`
	TotalStakes        int64           `json:"total_stakes"`
	TotalStakeVolume   decimal.Decimal `json:"total_stake_volume"`
	TotalUsers         int64           `json:"total_users"`
}

// UserStats are the per-address totals. An address with no history
// yields all zeros.
type UserStats struct {
	WalletAddress string          `json:"wallet_address"`
	TotalStaked   decimal.Decimal `json:"total_staked"`
	TotalClaimed  decimal.Decimal `json:"total_claimed"`
	ActiveStakes  int64           `json:"active_stakes"`
	TotalDelulus  int64           `json:"total_delulus"`
	TotalBets     int64           `json:"total_bets"`
}
