// internal/services/ledger_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
)

// LedgerService is the value transfer collaborator. All balances are uint64
// amounts in the smallest unit; every mutation is a conditional UPDATE so a
// debit can never push a balance below zero regardless of interleaving.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) GetOrCreateAccount(db *gorm.DB, ownerID uuid.UUID, kind models.AccountKind) (*models.Account, error) {
	if db == nil {
		db = s.db
	}

	var account models.Account
	err := db.Where("owner_id = ? AND kind = ?", ownerID, kind).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	account = models.Account{
		OwnerID: ownerID,
		Kind:    kind,
		Balance: 0,
	}
	if err := db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *LedgerService) Account(db *gorm.DB, ownerID uuid.UUID, kind models.AccountKind) (*models.Account, error) {
	if db == nil {
		db = s.db
	}

	var account models.Account
	if err := db.Where("owner_id = ? AND kind = ?", ownerID, kind).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &account, nil
}

func (s *LedgerService) AccountByID(db *gorm.DB, accountID uuid.UUID) (*models.Account, error) {
	if db == nil {
		db = s.db
	}

	var account models.Account
	if err := db.First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &account, nil
}

// Transfer moves amount from one account to another. The debit requires
// balance >= amount and fails with ErrInsufficientFunds otherwise.
func (s *LedgerService) Transfer(tx *gorm.DB, fromID, toID uuid.UUID, amount uint64) error {
	return s.transfer(tx, fromID, toID, amount, false)
}

// TransferStrict is Transfer with a strictly-greater balance requirement:
// the source must hold more than amount, not exactly amount.
func (s *LedgerService) TransferStrict(tx *gorm.DB, fromID, toID uuid.UUID, amount uint64) error {
	return s.transfer(tx, fromID, toID, amount, true)
}

func (s *LedgerService) transfer(tx *gorm.DB, fromID, toID uuid.UUID, amount uint64, strict bool) error {
	if amount == 0 {
		return nil
	}

	cond := "id = ? AND balance >= ?"
	if strict {
		cond = "id = ? AND balance > ?"
	}

	debit := tx.Model(&models.Account{}).
		Where(cond, fromID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if debit.Error != nil {
		return fmt.Errorf("failed to debit account: %w", debit.Error)
	}
	if debit.RowsAffected == 0 {
		return ErrInsufficientFunds
	}

	credit := tx.Model(&models.Account{}).
		Where("id = ?", toID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if credit.Error != nil {
		return fmt.Errorf("failed to credit account: %w", credit.Error)
	}
	if credit.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Credit adds funds to an account outside a transfer pair (deposits only).
func (s *LedgerService) Credit(tx *gorm.DB, accountID uuid.UUID, amount uint64) error {
	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *LedgerService) Balance(ownerID uuid.UUID, kind models.AccountKind) (uint64, error) {
	account, err := s.Account(nil, ownerID, kind)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}
