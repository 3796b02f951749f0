package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"delulu-backend/internal/models"
	"delulu-backend/internal/onchain"
)

// DeluluService handles delulu lifecycle and read projections
type DeluluService struct {
	db    *gorm.DB
	users *UserService
}

// NewDeluluService creates a new DeluluService
func NewDeluluService(db *gorm.DB, users *UserService) *DeluluService {
	return &DeluluService{db: db, users: users}
}

// ListDelulusFilter narrows a delulu listing. Cursor is the on-chain id
// of the last row from the previous page; listing walks on-chain ids in
// descending order.
type ListDelulusFilter struct {
	Limit           int
	Cursor          *int64
	CreatorAddress  string
	IncludeResolved bool
}

// DeluluPage is one page of delulus plus the cursor for the next one.
type DeluluPage struct {
	Items      []models.DeluluResponse `json:"items"`
	NextCursor *string                 `json:"next_cursor,omitempty"`
}

const defaultPageSize = 20
const maxPageSize = 100

// ParseOnChainID parses an external on-chain id serialized as a string.
func ParseOnChainID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidOnChainID
	}
	return id, nil
}

// Create ingests a verified on-chain creation event. Totals start at
// zero; a second event for the same on-chain id is rejected.
func (s *DeluluService) Create(req *models.CreateDeluluRequest) (*models.Delulu, error) {
	onChainID, err := ParseOnChainID(req.OnChainID)
	if err != nil {
		return nil, err
	}
	if req.ContentHash == "" {
		return nil, ErrMissingContentHash
	}
	if !req.ResolutionDeadline.After(req.StakingDeadline) {
		return nil, ErrInvalidDeadlines
	}

	creator, err := s.users.FindOrCreateByAddress(&models.FindOrCreateUserRequest{
		WalletAddress: req.CreatorAddress,
	})
	if err != nil {
		return nil, err
	}

	var existing models.Delulu
	if err := s.db.Where("on_chain_id = ?", onChainID).First(&existing).Error; err == nil {
		return nil, ErrDuplicateOnChainID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	delulu := models.Delulu{
		ID:                 uuid.New(),
		OnChainID:          onChainID,
		ContentHash:        req.ContentHash,
		Content:            req.Content,
		CreatorID:          creator.ID,
		StakingDeadline:    req.StakingDeadline,
		ResolutionDeadline: req.ResolutionDeadline,
		BgImageURL:         req.BgImageURL,
	}
	if req.Gatekeeper != nil {
		delulu.GatekeeperEnabled = true
		delulu.GatekeeperType = &req.Gatekeeper.Type
		delulu.GatekeeperValue = &req.Gatekeeper.Value
		if req.Gatekeeper.Label != "" {
			delulu.GatekeeperLabel = &req.Gatekeeper.Label
		}
	}

	if err := s.db.Create(&delulu).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOnChainID
		}
		return nil, fmt.Errorf("failed to create delulu: %w", err)
	}

	log.Info().Int64("on_chain_id", onChainID).Str("creator", creator.WalletAddress).Msg("delulu created")
	delulu.Creator = creator
	return &delulu, nil
}

// GetByOnChainID retrieves a delulu by its on-chain id
func (s *DeluluService) GetByOnChainID(onChainID int64) (*models.Delulu, error) {
	var delulu models.Delulu
	if err := s.db.Where("on_chain_id = ?", onChainID).Preload("Creator").First(&delulu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeluluNotFound
		}
		return nil, err
	}
	return &delulu, nil
}

// List returns a page of delulus, newest on-chain id first.
func (s *DeluluService) List(filter ListDelulusFilter) (*DeluluPage, error) {
	limit := clampLimit(filter.Limit)

	query := s.db.Model(&models.Delulu{}).Preload("Creator")
	if filter.Cursor != nil {
		query = query.Where("on_chain_id < ?", *filter.Cursor)
	}
	if !filter.IncludeResolved {
		query = query.Where("is_resolved = ? AND is_cancelled = ?", false, false)
	}
	if filter.CreatorAddress != "" {
		address, ok := onchain.NormalizeAddress(filter.CreatorAddress)
		if !ok {
			return nil, ErrInvalidAddress
		}
		query = query.Joins("JOIN users ON users.id = delulus.creator_id").
			Where("users.wallet_address = ?", address)
	}

	var delulus []models.Delulu
	if err := query.Order("on_chain_id DESC").Limit(limit).Find(&delulus).Error; err != nil {
		return nil, err
	}

	return newDeluluPage(delulus, limit), nil
}

// ListByState returns a page of delulus whose derived state matches.
// Active and StakingClosed translate the time component of the state
// derivation into the query; Resolved and Cancelled follow the same
// precedence the derivation uses (cancelled wins).
func (s *DeluluService) ListByState(state models.DeluluState, limit int, cursor *int64) (*DeluluPage, error) {
	pageSize := clampLimit(limit)
	now := time.Now()

	query := s.db.Model(&models.Delulu{}).Preload("Creator")
	if cursor != nil {
		query = query.Where("on_chain_id < ?", *cursor)
	}

	switch state {
	case models.DeluluStateActive:
		query = query.Where("is_resolved = ? AND is_cancelled = ? AND staking_deadline > ?", false, false, now)
	case models.DeluluStateStakingClosed:
		query = query.Where("is_resolved = ? AND is_cancelled = ? AND staking_deadline <= ?", false, false, now)
	case models.DeluluStateResolved:
		query = query.Where("is_resolved = ? AND is_cancelled = ?", true, false)
	case models.DeluluStateCancelled:
		query = query.Where("is_cancelled = ?", true)
	default:
		return nil, fmt.Errorf("unknown delulu state %q", state)
	}

	var delulus []models.Delulu
	if err := query.Order("on_chain_id DESC").Limit(pageSize).Find(&delulus).Error; err != nil {
		return nil, err
	}

	return newDeluluPage(delulus, pageSize), nil
}

// Trending returns the top open delulus ranked by total stake, nearest
// staking deadline breaking ties.
func (s *DeluluService) Trending(limit int) ([]models.DeluluResponse, error) {
	pageSize := clampLimit(limit)
	now := time.Now()

	var delulus []models.Delulu
	err := s.db.Model(&models.Delulu{}).
		Preload("Creator").
		Where("is_resolved = ? AND is_cancelled = ? AND staking_deadline > ?", false, false, now).
		Order("(total_believer_stake + total_doubter_stake) DESC").
		Order("staking_deadline ASC").
		Limit(pageSize).
		Find(&delulus).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.DeluluResponse, 0, len(delulus))
	for _, d := range delulus {
		items = append(items, models.NewDeluluResponse(d, now))
	}
	return items, nil
}

// Resolve ingests a resolution event. Cancelled delulus cannot be
// resolved and resolution is applied once.
func (s *DeluluService) Resolve(onChainID int64, outcome bool) (*models.Delulu, error) {
	delulu, err := s.GetByOnChainID(onChainID)
	if err != nil {
		return nil, err
	}
	if delulu.IsCancelled {
		return nil, ErrAlreadyCancelled
	}
	if delulu.IsResolved {
		return nil, ErrAlreadyResolved
	}

	if err := s.db.Model(delulu).Updates(map[string]interface{}{
		"is_resolved": true,
		"outcome":     outcome,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve delulu: %w", err)
	}

	delulu.IsResolved = true
	delulu.Outcome = &outcome

	log.Info().Int64("on_chain_id", onChainID).Bool("outcome", outcome).Msg("delulu resolved")
	return delulu, nil
}

// Cancel ingests a cancellation event. Resolved delulus cannot be
// cancelled.
func (s *DeluluService) Cancel(onChainID int64) (*models.Delulu, error) {
	delulu, err := s.GetByOnChainID(onChainID)
	if err != nil {
		return nil, err
	}
	if delulu.IsResolved {
		return nil, ErrAlreadyResolved
	}
	if delulu.IsCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.db.Model(delulu).Update("is_cancelled", true).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel delulu: %w", err)
	}

	delulu.IsCancelled = true

	log.Info().Int64("on_chain_id", onChainID).Msg("delulu cancelled")
	return delulu, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func newDeluluPage(delulus []models.Delulu, pageSize int) *DeluluPage {
	now := time.Now()
	page := &DeluluPage{Items: make([]models.DeluluResponse, 0, len(delulus))}
	for _, d := range delulus {
		page.Items = append(page.Items, models.NewDeluluResponse(d, now))
	}
	// A full page may have more rows behind it; serialize the cursor as
	// a string to keep large ids JSON-safe.
	if len(delulus) == pageSize {
		next := strconv.FormatInt(delulus[len(delulus)-1].OnChainID, 10)
		page.NextCursor = &next
	}
	return page
}
