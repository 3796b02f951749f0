package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delulu-backend/internal/models"
	"delulu-backend/internal/onchain"
)

// StakeService handles stake ingestion. The stake insert and the
// matching side-total increment on the parent delulu execute inside one
// transaction; the unique index on tx_hash closes the race between the
// duplicate pre-check and the insert.
type StakeService struct {
	db    *gorm.DB
	users *UserService
}

// NewStakeService creates a new StakeService
func NewStakeService(db *gorm.DB, users *UserService) *StakeService {
	return &StakeService{db: db, users: users}
}

// Create ingests a verified on-chain stake event. The event is applied
// at most once per tx hash, and only while the delulu is Active.
func (s *StakeService) Create(req *models.CreateStakeRequest) (*models.Stake, error) {
	onChainID, err := ParseOnChainID(req.DeluluID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if !onchain.IsTxHash(req.TxHash) {
		return nil, ErrInvalidTxHash
	}
	txHash := onchain.NormalizeTxHash(req.TxHash)

	user, err := s.users.FindOrCreateByAddress(&models.FindOrCreateUserRequest{
		WalletAddress: req.UserAddress,
	})
	if err != nil {
		return nil, err
	}

	var stake models.Stake
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var delulu models.Delulu
		if err := tx.Where("on_chain_id = ?", onChainID).First(&delulu).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeluluNotFound
			}
			return err
		}

		if delulu.State(time.Now()) != models.DeluluStateActive {
			return ErrStakingClosed
		}

		var existing models.Stake
		if err := tx.Where("tx_hash = ?", txHash).First(&existing).Error; err == nil {
			return ErrDuplicateTx
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		stake = models.Stake{
			ID:       uuid.New(),
			UserID:   user.ID,
			DeluluID: delulu.ID,
			Side:     *req.Side,
			Amount:   amount,
			TxHash:   txHash,
		}
		if err := tx.Create(&stake).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTx
			}
			return fmt.Errorf("failed to create stake: %w", err)
		}

		column := "total_doubter_stake"
		if stake.Side {
			column = "total_believer_stake"
		}
		res := tx.Model(&models.Delulu{}).Where("id = ?", delulu.ID).
			UpdateColumn(column, gorm.Expr(column+" + ?", amount))
		if res.Error != nil {
			return fmt.Errorf("failed to increment %s: %w", column, res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("delulu %d vanished while staking", onChainID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("on_chain_id", onChainID).
		Str("user", user.WalletAddress).
		Bool("side", stake.Side).
		Str("amount", amount.String()).
		Msg("stake recorded")

	stake.User = user
	return &stake, nil
}

// ListByDelulu returns all stakes on a delulu, newest first.
func (s *StakeService) ListByDelulu(onChainID int64) ([]models.Stake, error) {
	var delulu models.Delulu
	if err := s.db.Where("on_chain_id = ?", onChainID).First(&delulu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeluluNotFound
		}
		return nil, err
	}

	var stakes []models.Stake
	if err := s.db.Where("delulu_id = ?", delulu.ID).
		Preload("User").
		Order("created_at DESC").
		Find(&stakes).Error; err != nil {
		return nil, err
	}
	return stakes, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
