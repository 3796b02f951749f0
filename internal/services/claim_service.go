package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"delulu-backend/internal/models"
	"delulu-backend/internal/onchain"
)

// ClaimService handles payout claim ingestion
type ClaimService struct {
	db    *gorm.DB
	users *UserService
}

// NewClaimService creates a new ClaimService
func NewClaimService(db *gorm.DB, users *UserService) *ClaimService {
	return &ClaimService{db: db, users: users}
}

// Create ingests a verified on-chain claim event. A tx hash is applied
// at most once, and a user claims at most once per delulu.
func (s *ClaimService) Create(req *models.CreateClaimRequest) (*models.Claim, error) {
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

	var claim models.Claim
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var delulu models.Delulu
		if err := tx.Where("on_chain_id = ?", onChainID).First(&delulu).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeluluNotFound
			}
			return err
		}

		var existing models.Claim
		if err := tx.Where("tx_hash = ?", txHash).First(&existing).Error; err == nil {
			return ErrDuplicateTx
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Where("delulu_id = ? AND user_id = ?", delulu.ID, user.ID).
			First(&existing).Error; err == nil {
			return ErrDuplicateClaim
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		claim = models.Claim{
			ID:       uuid.New(),
			UserID:   user.ID,
			DeluluID: delulu.ID,
			Amount:   amount,
			TxHash:   txHash,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTx
			}
			return fmt.Errorf("failed to create claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("on_chain_id", onChainID).
		Str("user", user.WalletAddress).
		Str("amount", amount.String()).
		Msg("claim recorded")

	claim.User = user
	return &claim, nil
}
