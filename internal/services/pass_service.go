// internal/services/pass_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/database"
	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

// PassService handles access pass purchases and access checks.
type PassService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
}

func NewPassService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService) *PassService {
	return &PassService{db: db, ledger: ledger, notifier: notifier}
}

type PayPassInput struct {
	PaperEntryID uuid.UUID `json:"paper_entry_id" binding:"required"`
	ResearcherID uuid.UUID `json:"researcher_id" binding:"required"`
}

// PayPass purchases an access pass for a paper. For paywalled papers the
// full price moves from the reader to the researcher; the platform takes
// nothing here, its cut was charged at listing time. Open-access papers
// yield a zero-price pass with no transfer. At most one pass per
// (reader, paper) pair.
func (s *PassService) PayPass(readerID uuid.UUID, input PayPassInput) (*models.PaperAccessPass, error) {
	var paper models.PaperEntry
	err := s.db.First(&paper, "id = ?", input.PaperEntryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// The payee named in the request must be the paper's actual researcher.
	if paper.ResearcherID != input.ResearcherID {
		return nil, ErrInvalidResearcher
	}

	var count int64
	err = s.db.Model(&models.PaperAccessPass{}).
		Where("paper_entry_id = ? AND reader_id = ?", paper.ID, readerID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrPassExists
	}

	var pass *models.PaperAccessPass
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if !paper.OpenAccess {
			readerAccount, err := s.ledger.GetOrCreateAccount(tx, readerID, models.AccountKindUser)
			if err != nil {
				return err
			}
			researcherAccount, err := s.ledger.GetOrCreateAccount(tx, paper.ResearcherID, models.AccountKindUser)
			if err != nil {
				return err
			}
			// Strict so the reader is left with a positive balance.
			if err := s.ledger.TransferStrict(tx, readerAccount.ID, researcherAccount.ID, paper.Price); err != nil {
				if errors.Is(err, ErrInsufficientFunds) {
					return ErrInsufficientBalanceForListing
				}
				return err
			}
		}

		pass = &models.PaperAccessPass{
			PaperEntryID: paper.ID,
			ReaderID:     readerID,
			PricePaid:    paper.Price,
			PurchasedAt:  time.Now().UTC(),
		}
		if err := tx.Create(pass).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrPassExists
			}
			return fmt.Errorf("failed to create access pass: %w", err)
		}

		return s.notifier.PassCreated(tx, pass, paper.PlatformID)
	})
	if err != nil {
		return nil, err
	}
	return pass, nil
}

func (s *PassService) GetPass(passID uuid.UUID) (*models.PaperAccessPass, error) {
	var pass models.PaperAccessPass
	err := s.db.Preload("PaperEntry").Preload("Credential").First(&pass, "id = ?", passID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &pass, nil
}

// HasAccess reports whether the reader may download the paper: either it is
// open access or they hold a pass for it.
func (s *PassService) HasAccess(readerID, paperID uuid.UUID) (bool, error) {
	var paper models.PaperEntry
	err := s.db.Select("open_access", "researcher_id").First(&paper, "id = ?", paperID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPaperNotFound
		}
		return false, fmt.Errorf("database error: %w", err)
	}
	if paper.OpenAccess || paper.ResearcherID == readerID {
		return true, nil
	}

	var count int64
	err = s.db.Model(&models.PaperAccessPass{}).
		Where("paper_entry_id = ? AND reader_id = ?", paperID, readerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *PassService) GetUserPasses(readerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PaperAccessPass{}).
		Preload("PaperEntry").Preload("Credential").
		Where("reader_id = ?", readerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var passes []models.PaperAccessPass
	query = utils.ApplySort(query, params, []string{"created_at", "purchased_at", "price_paid"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&passes).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(passes, total, params)
	return &result, nil
}
