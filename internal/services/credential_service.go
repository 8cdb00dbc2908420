// internal/services/credential_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/database"
	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

const defaultCredentialSymbol = "DESER"

// CredentialService issues the non-transferable proof-of-access credential
// bound to a purchased pass.
type CredentialService struct {
	db       *gorm.DB
	mint     *MintService
	notifier *NotificationService
}

func NewCredentialService(db *gorm.DB, mint *MintService, notifier *NotificationService) *CredentialService {
	return &CredentialService{db: db, mint: mint, notifier: notifier}
}

type MintCredentialInput struct {
	PassID uuid.UUID `json:"pass_id" binding:"required"`
	Name   string    `json:"name"`
	Symbol string    `json:"symbol"`
	URI    string    `json:"uri"`
}

// MintCredential mints the pass holder's credential. Exactly one credential
// can ever exist per pass; a retry after a partial failure fails closed with
// ErrCredentialAlreadyIssued rather than minting twice.
func (s *CredentialService) MintCredential(callerID uuid.UUID, input MintCredentialInput) (*models.Credential, error) {
	var pass models.PaperAccessPass
	err := s.db.Preload("PaperEntry").Preload("PaperEntry.Platform").First(&pass, "id = ?", input.PassID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if pass.ReaderID != callerID {
		return nil, ErrInvalidOwnerForCredential
	}
	if pass.CredentialID != nil {
		return nil, ErrCredentialAlreadyIssued
	}
	exists, err := s.mint.Exists(s.db, pass.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCredentialAlreadyIssued
	}

	name := input.Name
	if name == "" {
		name = pass.PaperEntry.Title
	}
	symbol := input.Symbol
	if symbol == "" {
		symbol = defaultCredentialSymbol
	}
	uri := input.URI
	if uri == "" {
		uri = pass.PaperEntry.URI
	}

	var credential *models.Credential
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		platform := &pass.PaperEntry.Platform

		credential, err = s.mint.MintOne(tx, platform, callerID, pass.ID)
		if err != nil {
			return err
		}
		if err := s.mint.AttachMetadata(tx, credential, name, symbol, uri, 0); err != nil {
			return err
		}
		if err := s.mint.LockSupply(tx, credential); err != nil {
			return err
		}

		// Guarded write so two concurrent mints cannot both claim the pass.
		res := tx.Model(&models.PaperAccessPass{}).
			Where("id = ? AND credential_id IS NULL", pass.ID).
			UpdateColumn("credential_id", credential.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to bind credential to pass: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCredentialAlreadyIssued
		}

		return s.notifier.CredentialIssued(tx, credential)
	})
	if err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *CredentialService) GetCredential(credentialID uuid.UUID) (*models.Credential, error) {
	var credential models.Credential
	err := s.db.Preload("Owner").First(&credential, "id = ?", credentialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &credential, nil
}

func (s *CredentialService) GetUserCredentials(ownerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Credential{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var credentials []models.Credential
	query = utils.ApplySort(query, params, []string{"created_at", "name"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&credentials).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(credentials, total, params)
	return &result, nil
}
