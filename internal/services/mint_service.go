// internal/services/mint_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

// MintService is the credential minting collaborator. It mints exactly one
// unit of a freeze-capable, non-transferable credential under a platform's
// authority, attaches descriptive metadata, and locks future supply.
type MintService struct {
	db *gorm.DB
}

func NewMintService(db *gorm.DB) *MintService {
	return &MintService{db: db}
}

// MintAddress derives the credential's address from the identity tuple, so
// the same (pass, holder) pair always maps to the same mint.
func MintAddress(passID, holderID uuid.UUID) string {
	return "0x" + utils.HashString("credential:"+passID.String()+":"+holderID.String())
}

// Exists reports whether a credential has already been minted for the pass.
// Callers check this before minting so a retry after a partial failure fails
// closed instead of double-minting.
func (s *MintService) Exists(tx *gorm.DB, passID uuid.UUID) (bool, error) {
	var count int64
	if err := tx.Model(&models.Credential{}).Where("pass_id = ?", passID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing mint: %w", err)
	}
	return count > 0, nil
}

// MintOne mints a single non-transferable unit to the holder under the
// platform's minting authority.
func (s *MintService) MintOne(tx *gorm.DB, authority *models.Platform, holderID, passID uuid.UUID) (*models.Credential, error) {
	credential := &models.Credential{
		PassID:          passID,
		OwnerID:         holderID,
		AuthorityID:     authority.ID,
		MintAddress:     MintAddress(passID, holderID),
		Supply:          1,
		NonTransferable: true,
	}

	if err := tx.Create(credential).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCredentialAlreadyIssued
		}
		return nil, fmt.Errorf("failed to mint credential: %w", err)
	}

	return credential, nil
}

// AttachMetadata records name/symbol/uri and the royalty rate on the mint.
func (s *MintService) AttachMetadata(tx *gorm.DB, credential *models.Credential, name, symbol, uri string, royaltyBps uint16) error {
	credential.Name = name
	credential.Symbol = symbol
	credential.URI = uri
	credential.RoyaltyBps = royaltyBps

	err := tx.Model(&models.Credential{}).
		Where("id = ?", credential.ID).
		Updates(map[string]interface{}{
			"name":        name,
			"symbol":      symbol,
			"uri":         uri,
			"royalty_bps": royaltyBps,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to attach metadata: %w", err)
	}
	return nil
}

// LockSupply caps the credential at its current supply of one.
func (s *MintService) LockSupply(tx *gorm.DB, credential *models.Credential) error {
	credential.SupplyLocked = true

	err := tx.Model(&models.Credential{}).
		Where("id = ?", credential.ID).
		UpdateColumn("supply_locked", true).Error
	if err != nil {
		return fmt.Errorf("failed to lock supply: %w", err)
	}
	return nil
}

// isUniqueViolation covers both GORM's translated error and the raw driver
// messages for the dialects in use.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
