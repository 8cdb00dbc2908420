// internal/services/platform_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/config"
	"github.com/jenny07007/deserhub-backend/internal/database"
	"github.com/jenny07007/deserhub-backend/internal/models"
)

const maxPlatformNameLen = 32

// PlatformService covers platform initialization and treasury withdrawal.
type PlatformService struct {
	db       *gorm.DB
	cfg      *config.PlatformConfig
	ledger   *LedgerService
	notifier *NotificationService
}

func NewPlatformService(db *gorm.DB, cfg *config.PlatformConfig, ledger *LedgerService, notifier *NotificationService) *PlatformService {
	return &PlatformService{db: db, cfg: cfg, ledger: ledger, notifier: notifier}
}

type InitializePlatformInput struct {
	Name   string `json:"name" binding:"required"`
	FeeBps uint16 `json:"fee_bps"`
}

// InitializePlatform creates the operator's marketplace together with its
// escrow account. One platform per operator; the fee rate is immutable and
// must not exceed the configured cap.
func (s *PlatformService) InitializePlatform(operatorID uuid.UUID, input InitializePlatformInput) (*models.Platform, error) {
	if len(input.Name) == 0 || len(input.Name) > maxPlatformNameLen {
		return nil, ErrInvalidNameLength
	}
	if input.FeeBps > s.cfg.FeeCapBps {
		return nil, ErrInvalidListingFee
	}

	var existing models.Platform
	err := s.db.Where("operator_id = ?", operatorID).First(&existing).Error
	if err == nil {
		return nil, ErrPlatformExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var platform *models.Platform
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		escrow, err := s.ledger.GetOrCreateAccount(tx, operatorID, models.AccountKindEscrow)
		if err != nil {
			return err
		}

		platform = &models.Platform{
			OperatorID:      operatorID,
			Name:            input.Name,
			FeeBps:          input.FeeBps,
			EscrowAccountID: escrow.ID,
		}
		if err := tx.Create(platform).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrPlatformExists
			}
			return fmt.Errorf("failed to create platform: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return platform, nil
}

func (s *PlatformService) GetPlatform(platformID uuid.UUID) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.Preload("EscrowAccount").First(&platform, "id = ?", platformID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &platform, nil
}

func (s *PlatformService) GetPlatformByOperator(operatorID uuid.UUID) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.Preload("EscrowAccount").Where("operator_id = ?", operatorID).First(&platform).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &platform, nil
}

type WithdrawInput struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// Withdraw moves accumulated listing fees from the platform escrow to the
// operator's own account. Both the requested amount and the escrow balance
// before the move must be at or above the configured floor.
func (s *PlatformService) Withdraw(operatorID, platformID uuid.UUID, amount uint64) (*models.Account, error) {
	platform, err := s.GetPlatform(platformID)
	if err != nil {
		return nil, err
	}
	if platform.OperatorID != operatorID {
		return nil, ErrNotPlatformOperator
	}
	if amount < s.cfg.MinWithdraw {
		return nil, ErrWithdrawalBelowMinimum
	}

	var operatorAccount *models.Account
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		escrow, err := s.ledger.AccountByID(tx, platform.EscrowAccountID)
		if err != nil {
			return err
		}
		if escrow.Balance < s.cfg.MinWithdraw {
			return ErrWithdrawalBelowMinimum
		}
		if escrow.Balance < amount {
			return ErrInsufficientBalanceForWithdraw
		}

		operatorAccount, err = s.ledger.GetOrCreateAccount(tx, operatorID, models.AccountKindUser)
		if err != nil {
			return err
		}

		if err := s.ledger.Transfer(tx, escrow.ID, operatorAccount.ID, amount); err != nil {
			if errors.Is(err, ErrInsufficientFunds) {
				return ErrInsufficientBalanceForWithdraw
			}
			return err
		}

		return s.notifier.Withdrawal(tx, platform.ID, operatorID, amount)
	})
	if err != nil {
		return nil, err
	}

	return s.ledger.AccountByID(nil, operatorAccount.ID)
}

type PlatformStats struct {
	Papers        int64  `json:"papers"`
	OpenAccess    int64  `json:"open_access_papers"`
	Passes        int64  `json:"passes"`
	Credentials   int64  `json:"credentials"`
	EscrowBalance uint64 `json:"escrow_balance"`
}

func (s *PlatformService) Stats(platformID uuid.UUID) (*PlatformStats, error) {
	platform, err := s.GetPlatform(platformID)
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{EscrowBalance: platform.EscrowAccount.Balance}

	if err := s.db.Model(&models.PaperEntry{}).Where("platform_id = ?", platformID).Count(&stats.Papers).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := s.db.Model(&models.PaperEntry{}).Where("platform_id = ? AND open_access = ?", platformID, true).Count(&stats.OpenAccess).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	err = s.db.Model(&models.PaperAccessPass{}).
		Joins("JOIN paper_entries ON paper_entries.id = paper_access_passes.paper_entry_id").
		Where("paper_entries.platform_id = ?", platformID).
		Count(&stats.Passes).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := s.db.Model(&models.Credential{}).Where("authority_id = ?", platformID).Count(&stats.Credentials).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}
