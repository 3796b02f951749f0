package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delulu-backend/internal/models"
	"delulu-backend/internal/onchain"
)

// LeaderboardType is the closed set of leaderboard variants. Unknown
// values are rejected at the boundary.
type LeaderboardType string

const (
	LeaderboardStakers  LeaderboardType = "stakers"
	LeaderboardEarners  LeaderboardType = "earners"
	LeaderboardActive   LeaderboardType = "active"
	LeaderboardCreators LeaderboardType = "creators"
)

// ParseLeaderboardType maps an external type string to a variant.
func ParseLeaderboardType(s string) (LeaderboardType, error) {
	switch LeaderboardType(s) {
	case LeaderboardStakers, LeaderboardEarners, LeaderboardActive, LeaderboardCreators:
		return LeaderboardType(s), nil
	}
	return "", ErrInvalidLeaderboardType
}

// StatsService produces the read-only aggregation views: leaderboards,
// platform totals and per-user stats. Every view tolerates zero rows.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsService
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

const userColumns = "users.wallet_address, users.x_username, users.display_name, users.avatar_url"

// GetLeaderboard returns the top users for the given variant. Ties are
// broken by ascending user id so rankings are deterministic.
func (s *StatsService) GetLeaderboard(lbType LeaderboardType, limit int) ([]models.LeaderboardEntry, error) {
	pageSize := clampLimit(limit)

	var entries []models.LeaderboardEntry
	var err error

	switch lbType {
	case LeaderboardStakers:
		err = s.db.Model(&models.Stake{}).
			Select("stakes.user_id AS user_id, "+userColumns+", COALESCE(SUM(stakes.amount), 0) AS total, COUNT(stakes.id) AS count").
			Joins("JOIN users ON users.id = stakes.user_id").
			Group("stakes.user_id, " + userColumns).
			Order("total DESC, stakes.user_id ASC").
			Limit(pageSize).
			Scan(&entries).Error
	case LeaderboardEarners:
		err = s.db.Model(&models.Claim{}).
			Select("claims.user_id AS user_id, "+userColumns+", COALESCE(SUM(claims.amount), 0) AS total, COUNT(claims.id) AS count").
			Joins("JOIN users ON users.id = claims.user_id").
			Group("claims.user_id, " + userColumns).
			Order("total DESC, claims.user_id ASC").
			Limit(pageSize).
			Scan(&entries).Error
	case LeaderboardActive:
		err = s.db.Model(&models.Stake{}).
			Select("stakes.user_id AS user_id, "+userColumns+", COUNT(stakes.id) AS count").
			Joins("JOIN users ON users.id = stakes.user_id").
			Group("stakes.user_id, " + userColumns).
			Order("count DESC, stakes.user_id ASC").
			Limit(pageSize).
			Scan(&entries).Error
	case LeaderboardCreators:
		err = s.db.Model(&models.Delulu{}).
			Select("delulus.creator_id AS user_id, "+userColumns+", COUNT(delulus.id) AS count").
			Joins("JOIN users ON users.id = delulus.creator_id").
			Group("delulus.creator_id, " + userColumns).
			Order("count DESC, delulus.creator_id ASC").
			Limit(pageSize).
			Scan(&entries).Error
	default:
		return nil, ErrInvalidLeaderboardType
	}
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// GetPlatformStats returns the platform-wide totals. TVL is the sum of
// both side totals across all delulus, which equals the grand sum of
// stake amounts.
func (s *StatsService) GetPlatformStats() (*models.PlatformStats, error) {
	stats := &models.PlatformStats{}

	row := s.db.Model(&models.Delulu{}).
		Select("COALESCE(SUM(total_believer_stake), 0), COALESCE(SUM(total_doubter_stake), 0), COUNT(id)").
		Row()
	if err := row.Scan(&stats.TotalBelieverStake, &stats.TotalDoubterStake, &stats.TotalDelulus); err != nil {
		return nil, err
	}

	row = s.db.Model(&models.Stake{}).
		Select("COALESCE(SUM(amount), 0), COUNT(id)").
		Row()
	if err := row.Scan(&stats.TotalStakeVolume, &stats.TotalStakes); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	stats.TVL = stats.TotalBelieverStake.Add(stats.TotalDoubterStake)
	return stats, nil
}

// GetUserStats returns the per-address totals. An address that has
// never been seen yields zero-valued stats, not an error.
func (s *StatsService) GetUserStats(address string) (*models.UserStats, error) {
	normalized, ok := onchain.NormalizeAddress(address)
	if !ok {
		return nil, ErrInvalidAddress
	}

	stats := &models.UserStats{
		WalletAddress: normalized,
		TotalStaked:   decimal.Zero,
		TotalClaimed:  decimal.Zero,
	}

	var user models.User
	if err := s.db.Where("wallet_address = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stats, nil
		}
		return nil, err
	}

	row := s.db.Model(&models.Stake{}).
		Select("COALESCE(SUM(amount), 0), COUNT(id)").
		Where("user_id = ?", user.ID).
		Row()
	if err := row.Scan(&stats.TotalStaked, &stats.TotalBets); err != nil {
		return nil, err
	}

	row = s.db.Model(&models.Claim{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", user.ID).
		Row()
	if err := row.Scan(&stats.TotalClaimed); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Stake{}).
		Joins("JOIN delulus ON delulus.id = stakes.delulu_id").
		Where("stakes.user_id = ? AND delulus.staking_deadline > ?", user.ID, time.Now()).
		Count(&stats.ActiveStakes).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Delulu{}).
		Where("creator_id = ?", user.ID).
		Count(&stats.TotalDelulus).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
