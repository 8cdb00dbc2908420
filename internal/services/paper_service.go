// internal/services/paper_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/database"
	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

const (
	maxTitleLen       = 300
	maxDescriptionLen = 500
	maxURILen         = 66
)

// PaperService handles paper listing and discovery.
type PaperService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
}

func NewPaperService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService) *PaperService {
	return &PaperService{db: db, ledger: ledger, notifier: notifier}
}

type CreatePaperInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	URI         string   `json:"uri" binding:"required"`
	Price       uint64   `json:"price"`
	OpenAccess  bool     `json:"open_access"`
	Tags        []string `json:"tags"`
}

func validateCreatePaper(input CreatePaperInput) error {
	switch {
	case len(input.Title) == 0:
		return ErrEmptyTitle
	case len(input.Title) > maxTitleLen:
		return ErrTitleTooLong
	case len(input.Description) == 0:
		return ErrEmptyDescription
	case len(input.Description) > maxDescriptionLen:
		return ErrDescriptionTooLong
	case len(input.URI) == 0:
		return ErrEmptyURI
	case len(input.URI) > maxURILen:
		return ErrURITooLong
	}

	// Open access and a nonzero price are mutually exclusive, and a paywalled
	// paper must cost something.
	if input.OpenAccess != (input.Price == 0) {
		return ErrInvalidPrice
	}
	return nil
}

// CreatePaper lists a paper on the platform. The listing fee, a fixed
// fraction of the price, is charged to the researcher up front and moved
// into the platform escrow. Open-access papers are free to list.
func (s *PaperService) CreatePaper(researcherID, platformID uuid.UUID, input CreatePaperInput) (*models.PaperEntry, error) {
	if err := validateCreatePaper(input); err != nil {
		return nil, err
	}

	var platform models.Platform
	if err := s.db.First(&platform, "id = ?", platformID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	fee, err := Fee(input.Price, platform.FeeBps)
	if err != nil {
		return nil, err
	}

	var paper *models.PaperEntry
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if fee > 0 {
			researcherAccount, err := s.ledger.GetOrCreateAccount(tx, researcherID, models.AccountKindUser)
			if err != nil {
				return err
			}
			if err := s.ledger.Transfer(tx, researcherAccount.ID, platform.EscrowAccountID, fee); err != nil {
				if errors.Is(err, ErrInsufficientFunds) {
					return ErrInsufficientBalanceForListing
				}
				return err
			}
		}

		paper = &models.PaperEntry{
			ResearcherID: researcherID,
			PlatformID:   platform.ID,
			Title:        input.Title,
			Description:  input.Description,
			URI:          input.URI,
			Price:        input.Price,
			OpenAccess:   input.OpenAccess,
			ListingFee:   fee,
			Tags:         pq.StringArray(input.Tags),
		}
		if err := tx.Create(paper).Error; err != nil {
			return fmt.Errorf("failed to create paper: %w", err)
		}

		return s.notifier.PaperCreated(tx, paper)
	})
	if err != nil {
		return nil, err
	}
	return paper, nil
}

func (s *PaperService) GetPaper(paperID uuid.UUID) (*models.PaperEntry, error) {
	var paper models.PaperEntry
	err := s.db.Preload("Researcher").Preload("Platform").First(&paper, "id = ?", paperID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &paper, nil
}

type PaperFilters struct {
	OpenAccess   *bool
	ResearcherID *uuid.UUID
	PlatformID   *uuid.UUID
}

// SearchPapers returns a paginated listing, optionally filtered by access
// type, researcher, or platform, with a keyword search over title and
// description.
func (s *PaperService) SearchPapers(params utils.PaginationParams, filters PaperFilters) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PaperEntry{}).Preload("Researcher")

	if filters.OpenAccess != nil {
		query = query.Where("open_access = ?", *filters.OpenAccess)
	}
	if filters.ResearcherID != nil {
		query = query.Where("researcher_id = ?", *filters.ResearcherID)
	}
	if filters.PlatformID != nil {
		query = query.Where("platform_id = ?", *filters.PlatformID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var papers []models.PaperEntry
	query = utils.ApplySort(query, params, []string{"created_at", "title", "price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(papers, total, params)
	return &result, nil
}
